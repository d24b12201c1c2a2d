package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	headerProjectID = "X-Apper-Project-Id"
	headerPublicKey = "X-Apper-Public-Key"
)

type HTTPConfig struct {
	BaseURL   string
	Table     string
	ProjectID string
	PublicKey string
	Timeout   time.Duration
}

// HTTPStore talks to the hosted record API. It keeps no state between calls.
type HTTPStore[T any] struct {
	cfg    HTTPConfig
	client *http.Client
}

func NewHTTPStore[T any](cfg HTTPConfig, client *http.Client) *HTTPStore[T] {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &HTTPStore[T]{cfg: cfg, client: client}
}

type fieldName struct {
	Name string `json:"Name"`
}

type wireField struct {
	Field fieldName `json:"Field"`
}

type wirePaging struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type wireGroupCondition struct {
	FieldName string   `json:"FieldName"`
	Operator  string   `json:"operator"`
	Values    []string `json:"values"`
}

type wireSubGroup struct {
	Conditions []wireGroupCondition `json:"conditions"`
	Operator   string               `json:"operator"`
}

type wireWhereGroup struct {
	Operator  string         `json:"operator"`
	SubGroups []wireSubGroup `json:"subGroups"`
}

type wireCondition struct {
	FieldName string   `json:"fieldName"`
	Operator  string   `json:"Operator"`
	Values    []string `json:"values"`
}

type wireOrderBy struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

type wireQuery struct {
	Fields      []wireField      `json:"Fields,omitempty"`
	PagingInfo  wirePaging       `json:"pagingInfo"`
	WhereGroups []wireWhereGroup `json:"whereGroups,omitempty"`
	Where       []wireCondition  `json:"where,omitempty"`
	OrderBy     []wireOrderBy    `json:"orderBy,omitempty"`
}

type wireResponse struct {
	Success    *bool           `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	TotalCount int             `json:"totalCount"`
}

type recordEnvelope[T any] struct {
	Record T `json:"record"`
}

type deleteEnvelope struct {
	RecordIDs []int64 `json:"RecordIds"`
}

func encodeQuery(q Query) wireQuery {
	w := wireQuery{PagingInfo: wirePaging{Limit: q.Paging.Limit, Offset: q.Paging.Offset}}
	for _, f := range q.Fields {
		w.Fields = append(w.Fields, wireField{Field: fieldName{Name: f}})
	}
	for _, g := range q.WhereGroups {
		wg := wireWhereGroup{Operator: g.Operator}
		for _, sg := range g.SubGroups {
			wsg := wireSubGroup{Operator: sg.Operator}
			for _, c := range sg.Conditions {
				wsg.Conditions = append(wsg.Conditions, wireGroupCondition{
					FieldName: c.FieldName,
					Operator:  c.Operator,
					Values:    c.Values,
				})
			}
			wg.SubGroups = append(wg.SubGroups, wsg)
		}
		w.WhereGroups = append(w.WhereGroups, wg)
	}
	for _, c := range q.Where {
		w.Where = append(w.Where, wireCondition{FieldName: c.FieldName, Operator: c.Operator, Values: c.Values})
	}
	for _, o := range q.OrderBy {
		w.OrderBy = append(w.OrderBy, wireOrderBy{Field: o.Field, Direction: o.Direction})
	}
	return w
}

func (s *HTTPStore[T]) Fetch(ctx context.Context, q Query) (Page[T], error) {
	resp, err := s.do(ctx, http.MethodPost, s.recordsURL("query"), encodeQuery(q))
	if err != nil {
		return Page[T]{}, err
	}

	page := Page[T]{TotalCount: resp.TotalCount}
	if len(resp.Data) > 0 && string(resp.Data) != "null" {
		if err := json.Unmarshal(resp.Data, &page.Records); err != nil {
			return Page[T]{}, fmt.Errorf("decode records: %w", err)
		}
	}
	if page.Records == nil {
		page.Records = []T{}
	}
	return page, nil
}

func (s *HTTPStore[T]) Get(ctx context.Context, id int64) (T, error) {
	var record T
	resp, err := s.do(ctx, http.MethodGet, s.recordsURL(strconv.FormatInt(id, 10)), nil)
	if err != nil {
		return record, err
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return record, ErrRecordNotFound
	}
	if err := json.Unmarshal(resp.Data, &record); err != nil {
		return record, fmt.Errorf("decode record: %w", err)
	}
	return record, nil
}

func (s *HTTPStore[T]) Create(ctx context.Context, record T) (T, error) {
	return s.write(ctx, http.MethodPost, record)
}

func (s *HTTPStore[T]) Update(ctx context.Context, record T) (T, error) {
	return s.write(ctx, http.MethodPut, record)
}

func (s *HTTPStore[T]) Delete(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return ErrMissingID
	}
	_, err := s.do(ctx, http.MethodDelete, s.recordsURL(""), deleteEnvelope{RecordIDs: ids})
	return err
}

func (s *HTTPStore[T]) write(ctx context.Context, method string, record T) (T, error) {
	resp, err := s.do(ctx, method, s.recordsURL(""), recordEnvelope[T]{Record: record})
	if err != nil {
		return record, err
	}

	var stored T
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return record, nil
	}
	if err := json.Unmarshal(resp.Data, &stored); err != nil {
		return record, fmt.Errorf("decode record: %w", err)
	}
	return stored, nil
}

func (s *HTTPStore[T]) recordsURL(suffix string) string {
	u := s.cfg.BaseURL + "/tables/" + url.PathEscape(s.cfg.Table) + "/records"
	if suffix != "" {
		u += "/" + suffix
	}
	return u
}

func (s *HTTPStore[T]) do(ctx context.Context, method, target string, body any) (*wireResponse, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(headerProjectID, s.cfg.ProjectID)
	req.Header.Set(headerPublicKey, s.cfg.PublicKey)

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var out wireResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil && res.StatusCode < 300 {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrRecordNotFound
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &RemoteError{Status: res.StatusCode, Message: out.Message}
	}
	if out.Success != nil && !*out.Success {
		return nil, &RemoteError{Status: res.StatusCode, Message: out.Message}
	}

	return &out, nil
}
