package directory_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/apper-canvas/staffsync-program-correct/internal/directory"
	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	"github.com/apper-canvas/staffsync-program-correct/internal/employeeform"
	"github.com/apper-canvas/staffsync-program-correct/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func openForm(t *testing.T, env *testEnv, req directory.OpenFormRequest) employeeform.View {
	t.Helper()
	w, res := env.do(t, http.MethodPost, "/forms", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[employeeform.View](t, res)
}

func TestHandler_WizardFlow(t *testing.T) {
	env := setupEnv(t)
	form := openForm(t, env, directory.OpenFormRequest{Wizard: true})
	assert.Equal(t, employeeform.ModeCreate, form.Mode)
	assert.Equal(t, 1, form.Step)
	base := "/forms/" + form.ID

	w, res := env.do(t, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Please fix the errors before continuing", res.Notice.Message)

	fields := validFields()
	w, _ = env.do(t, http.MethodPatch, base, directory.UpdateFormRequest{Fields: map[string]string{
		"firstName": fields["firstName"],
		"lastName":  fields["lastName"],
		"email":     fields["email"],
		"phone":     fields["phone"],
	}})
	require.Equal(t, http.StatusOK, w.Code)

	_, res = env.do(t, http.MethodPost, base+"/next", nil)
	assert.Equal(t, 2, decodeData[employeeform.View](t, res).Step)

	w, res = env.do(t, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Form can only be submitted from the last step", res.Notice.Message)

	_, res = env.do(t, http.MethodPatch, base, directory.UpdateFormRequest{Fields: map[string]string{
		"department":     "Sales",
		"position":       "Account Executive",
		"startDate":      fields["startDate"],
		"employmentType": "Contract",
	}})
	view := decodeData[employeeform.View](t, res)
	assert.Contains(t, view.PositionOptions, "Account Executive")

	_, res = env.do(t, http.MethodPost, base+"/back", nil)
	assert.Equal(t, 1, decodeData[employeeform.View](t, res).Step)
	env.do(t, http.MethodPost, base+"/next", nil)
	_, res = env.do(t, http.MethodPost, base+"/next", nil)
	assert.Equal(t, 3, decodeData[employeeform.View](t, res).Step)

	created := ada()
	created.Department, created.Position, created.EmploymentType = "Sales", "Account Executive", "Contract"
	env.gateway.EXPECT().
		Create(gomock.Any(), matching(func(e employee.Employee) bool {
			return e.Department == "Sales" && e.EmploymentType == "Contract"
		})).
		Return(created, nil)

	w, res = env.do(t, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ada Lovelace has been added successfully", res.Notice.Message)
	submitted := decodeData[directory.SubmitView](t, res)
	assert.Equal(t, employeeform.PhaseSucceeded, submitted.Form.Phase)
	assert.Equal(t, "Sales", submitted.Employee.Department)

	w, _ = env.do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_EditForm(t *testing.T) {
	t.Run("starts from stored values", func(t *testing.T) {
		env := setupEnv(t)
		env.gateway.EXPECT().GetByID(gomock.Any(), int64(7)).Return(ada(), nil)

		form := openForm(t, env, directory.OpenFormRequest{Mode: employeeform.ModeEdit, EmployeeID: 7})

		assert.Equal(t, employeeform.ModeEdit, form.Mode)
		assert.Equal(t, "ada@example.com", form.Values.Email)
		assert.EqualValues(t, 7, form.Values.ID)
		assert.Equal(t, 1, env.ws.Forms.Len())
	})

	t.Run("requires an employee", func(t *testing.T) {
		env := setupEnv(t)

		w, res := env.do(t, http.MethodPost, "/forms", directory.OpenFormRequest{Mode: employeeform.ModeEdit})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "An existing employee is required to open an edit form", res.Error.Message)
	})
}

func TestHandler_FormPhoto(t *testing.T) {
	env := setupEnv(t)
	form := openForm(t, env, directory.OpenFormRequest{})
	base := "/forms/" + form.ID

	upload := func(name string, content []byte) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("photo", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, base+"/photo", &body).WithContext(context.Background())
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: env.ws.ID})
		w, _ := env.serve(t, req)
		return w
	}

	w := upload("avatar.png", pngHeader)
	require.Equal(t, http.StatusOK, w.Code)
	_, res := env.do(t, http.MethodGet, base, nil)
	view := decodeData[employeeform.View](t, res)
	assert.True(t, strings.HasPrefix(view.PhotoPreview, "data:image/png;base64,"))

	w = upload("notes.txt", []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, res = env.do(t, http.MethodDelete, base+"/photo", nil)
	assert.Empty(t, decodeData[employeeform.View](t, res).PhotoPreview)
}

func TestHandler_CloseForm(t *testing.T) {
	env := setupEnv(t)
	form := openForm(t, env, directory.OpenFormRequest{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/forms/"+form.ID, nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: env.ws.ID})
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, env.ws.Forms.Len())

	w2, res := env.do(t, http.MethodPatch, "/forms/"+form.ID, directory.UpdateFormRequest{Fields: map[string]string{"firstName": "x"}})
	assert.Equal(t, http.StatusNotFound, w2.Code)
	assert.Equal(t, "Form not found", res.Error.Message)
}
