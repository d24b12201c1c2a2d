package directory_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/apper-canvas/staffsync-program-correct/internal/directory"
	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	employeeerrors "github.com/apper-canvas/staffsync-program-correct/internal/employee/errors"
	"github.com/apper-canvas/staffsync-program-correct/internal/employeelist"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHandler_ListEmployees(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		env := setupEnv(t)
		env.gateway.EXPECT().
			List(gomock.Any(), employee.ListOptions{
				Limit:     10,
				Offset:    10,
				Search:    "ada",
				SortField: employee.FieldLastName,
				SortOrder: "DESC",
			}).
			Return(employee.ListResult{Records: []employee.Employee{ada()}, TotalCount: 11}, nil)

		w, res := env.do(t, http.MethodGet, "/employees?page=2&search=%20ada%20&sortOrder=desc", nil)

		require.Equal(t, http.StatusOK, w.Code)
		view := decodeData[employeelist.View](t, res)
		assert.Equal(t, 11, view.TotalCount)
		assert.Equal(t, 2, view.TotalPages)
		assert.Equal(t, 2, view.Query.Page)
		require.Len(t, view.Employees, 1)
		assert.Equal(t, "Lovelace", view.Employees[0].LastName)
		assert.EqualValues(t, 11, res.Meta["total"])
	})

	t.Run("department filter", func(t *testing.T) {
		env := setupEnv(t)
		env.gateway.EXPECT().
			List(gomock.Any(), matching(func(opts employee.ListOptions) bool {
				return opts.Department == "Sales" && opts.SortOrder == "ASC" && opts.Offset == 0
			})).
			Return(employee.ListResult{Records: []employee.Employee{}}, nil)

		w, _ := env.do(t, http.MethodGet, "/employees?department=Sales", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown sort field", func(t *testing.T) {
		env := setupEnv(t)

		w, res := env.do(t, http.MethodGet, "/employees?sortField=salary", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, res.Error)
		assert.Equal(t, "Sort Field is invalid", res.Error.Message)
	})

	t.Run("record store failure", func(t *testing.T) {
		env := setupEnv(t)
		env.gateway.EXPECT().
			List(gomock.Any(), gomock.Any()).
			Return(employee.ListResult{}, apperror.RemoteQuery(errors.New("table unavailable")))

		w, res := env.do(t, http.MethodGet, "/employees", nil)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		require.NotNil(t, res.Error)
		assert.Equal(t, "table unavailable", res.Error.Message)
		assert.Equal(t, "table unavailable", env.ws.Employees.Snapshot().Error)
	})
}

func TestHandler_GetEmployee(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		env := setupEnv(t)
		env.gateway.EXPECT().GetByID(gomock.Any(), int64(7)).Return(ada(), nil)

		w, res := env.do(t, http.MethodGet, "/employees/7", nil)

		require.Equal(t, http.StatusOK, w.Code)
		view := decodeData[directory.DetailView](t, res)
		require.NotNil(t, view.Employee)
		assert.Equal(t, "Ada Lovelace", view.Employee.FullName)
		assert.Equal(t, "(555) 123-4567", view.Employee.FormattedPhone)
		assert.Equal(t, "/employees", view.ReturnTo)
		assert.Nil(t, env.ws.Employees.Snapshot().Current)
	})

	t.Run("not found", func(t *testing.T) {
		env := setupEnv(t)
		env.gateway.EXPECT().GetByID(gomock.Any(), int64(9)).Return(employee.Employee{}, employeeerrors.ErrEmployeeNotFound)

		w, res := env.do(t, http.MethodGet, "/employees/9", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, res.Error)
		var details directory.DetailView
		require.NoError(t, json.Unmarshal(res.Error.Details, &details))
		assert.Equal(t, "Employee not found", details.Error)
		assert.Equal(t, "/employees", details.ReturnTo)
	})

	t.Run("invalid id", func(t *testing.T) {
		env := setupEnv(t)

		w, res := env.do(t, http.MethodGet, "/employees/abc", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid employee ID", res.Error.Message)
	})
}

func TestHandler_CreateEmployee(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		env := setupEnv(t)
		env.gateway.EXPECT().
			Create(gomock.Any(), matching(func(e employee.Employee) bool {
				return e.ID == 0 && e.Email == "ada@example.com" && e.Position == "Software Engineer"
			})).
			Return(ada(), nil)

		w, res := env.do(t, http.MethodPost, "/employees", directory.EmployeeForm{Fields: validFields()})

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, res.Notice)
		assert.Equal(t, "success", res.Notice.Level)
		assert.Equal(t, "Ada Lovelace has been added successfully", res.Notice.Message)

		out := decodeData[directory.MutationResult](t, res)
		require.NotNil(t, out.Employee)
		assert.EqualValues(t, 7, out.Employee.ID)
		assert.Zero(t, env.ws.Forms.Len())
		assert.Equal(t, 1, env.ws.Employees.Snapshot().TotalCount)
	})

	t.Run("validation failure", func(t *testing.T) {
		env := setupEnv(t)
		fields := validFields()
		fields["email"] = "not-an-email"
		fields["phone"] = "123"

		w, res := env.do(t, http.MethodPost, "/employees", directory.EmployeeForm{Fields: fields})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.NotNil(t, res.Error)
		assert.Equal(t, "Please fix the errors before submitting", res.Error.Message)

		var details map[string]string
		require.NoError(t, json.Unmarshal(res.Error.Details, &details))
		assert.Equal(t, "Email address is invalid", details["email"])
		assert.Equal(t, "Phone number should be 10 digits", details["phone"])
		assert.Zero(t, env.ws.Forms.Len())
	})

	t.Run("record store failure", func(t *testing.T) {
		env := setupEnv(t)
		env.gateway.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(employee.Employee{}, apperror.RemoteQuery(errors.New("Email already exists")))

		w, res := env.do(t, http.MethodPost, "/employees", directory.EmployeeForm{Fields: validFields()})

		assert.Equal(t, http.StatusBadGateway, w.Code)
		require.NotNil(t, res.Notice)
		assert.Equal(t, "error", res.Notice.Level)
		assert.Equal(t, "Failed to add employee: Email already exists", res.Notice.Message)
	})

	t.Run("unknown field", func(t *testing.T) {
		env := setupEnv(t)
		fields := validFields()
		fields["salary"] = "100"

		w, res := env.do(t, http.MethodPost, "/employees", directory.EmployeeForm{Fields: fields})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Unknown form field", res.Error.Message)
	})

	t.Run("photo data url", func(t *testing.T) {
		env := setupEnv(t)
		env.gateway.EXPECT().
			Create(gomock.Any(), matching(func(e employee.Employee) bool {
				return e.Photo == pngDataURL
			})).
			Return(ada(), nil)

		photo := pngDataURL
		w, _ := env.do(t, http.MethodPost, "/employees", directory.EmployeeForm{Fields: validFields(), Photo: &photo})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		env := setupEnv(t)

		w, _ := env.do(t, http.MethodPost, "/employees", map[string]any{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_UpdateEmployee(t *testing.T) {
	t.Run("uses cached record", func(t *testing.T) {
		env := setupEnv(t)
		env.ws.Employees.FetchSucceeded([]employee.Employee{ada()}, 1)

		env.gateway.EXPECT().
			Update(gomock.Any(), matching(func(e employee.Employee) bool {
				return e.ID == 7 && e.Position == "QA Engineer" && e.FirstName == "Ada"
			})).
			DoAndReturn(func(_ context.Context, e employee.Employee) (employee.Employee, error) { return e, nil })

		w, res := env.do(t, http.MethodPut, "/employees/7", directory.EmployeeForm{
			Fields: map[string]string{"department": "Engineering", "position": "QA Engineer"},
		})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Ada Lovelace has been updated successfully", res.Notice.Message)
		assert.Equal(t, "QA Engineer", env.ws.Employees.Snapshot().Employees[0].Position)
	})

	t.Run("fetches missing record", func(t *testing.T) {
		env := setupEnv(t)
		gomock.InOrder(
			env.gateway.EXPECT().GetByID(gomock.Any(), int64(7)).Return(ada(), nil),
			env.gateway.EXPECT().Update(gomock.Any(), gomock.Any()).
				Return(employee.Employee{}, apperror.RemoteQuery(errors.New("conflict"))),
		)

		w, res := env.do(t, http.MethodPut, "/employees/7", directory.EmployeeForm{
			Fields: map[string]string{"phone": "555-987-6543"},
		})

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "Failed to update employee: conflict", res.Notice.Message)
		assert.Nil(t, env.ws.Employees.Snapshot().Current)
	})
}

func TestHandler_DeleteEmployee(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		env := setupEnv(t)
		env.ws.Employees.FetchSucceeded([]employee.Employee{ada()}, 1)
		env.gateway.EXPECT().Delete(gomock.Any(), int64(7)).Return(nil)

		w, res := env.do(t, http.MethodDelete, "/employees/7", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Employee deleted successfully", res.Notice.Message)
		assert.Equal(t, "/employees", decodeData[directory.MutationResult](t, res).Next)
		assert.Empty(t, env.ws.Employees.Snapshot().Employees)
	})

	t.Run("failure", func(t *testing.T) {
		env := setupEnv(t)
		env.gateway.EXPECT().Delete(gomock.Any(), int64(7)).Return(apperror.RemoteQuery(errors.New("locked")))

		w, res := env.do(t, http.MethodDelete, "/employees/7", nil)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "error", res.Notice.Level)
		assert.Equal(t, "Failed to delete employee: locked", res.Notice.Message)
	})
}
