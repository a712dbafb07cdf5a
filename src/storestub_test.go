package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// storeStub is an in-memory stand-in for the hosted store's REST API. It
// understands the subset of the query dialect the gateway emits: eq/gte/in
// filters, column projection, col.sum() aggregates, Prefer return
// negotiation and exact counts over HEAD.
type storeStub struct {
	mu     sync.Mutex
	tables map[string][]map[string]any
	nextID map[string]uint
}

var stubIDColumns = map[string]string{
	"restaurantes":      "id_restaurante",
	"gerentes":          "id_gerente",
	"mesero":            "id_mesero",
	"cocinero":          "id_cocinero",
	"administrador_app": "id_admin_app",
	"mesa":              "id_mesa",
	"menu":              "id_menu",
	"pedidos":           "id_pedido",
	"detalle_pedido":    "id_detalle",
	"atencion":          "id_atencion",
}

func newStoreStub() *storeStub {
	return &storeStub{
		tables: map[string][]map[string]any{},
		nextID: map[string]uint{},
	}
}

func (s *storeStub) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = map[string][]map[string]any{}
	s.nextID = map[string]uint{}
}

// rows returns a snapshot of a table for direct assertions.
func (s *storeStub) rows(table string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, len(s.tables[table]))
	copy(out, s.tables[table])
	return out
}

func (s *storeStub) seed(table string, row map[string]any) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(table, row)
}

func (s *storeStub) insertLocked(table string, row map[string]any) uint {
	s.nextID[table]++
	id := s.nextID[table]
	if col, ok := stubIDColumns[table]; ok {
		row[col] = float64(id)
	}
	s.tables[table] = append(s.tables[table], row)
	return id
}

func (s *storeStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
	if table == r.URL.Path || strings.Contains(table, "/") {
		http.NotFound(w, r)
		return
	}
	if r.Header.Get("apikey") == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := r.URL.Query()
	selectExpr := query.Get("select")
	query.Del("select")

	switch r.Method {
	case http.MethodGet:
		matched := s.filterLocked(table, query)
		if strings.HasSuffix(selectExpr, ".sum()") {
			col := strings.TrimSuffix(selectExpr, ".sum()")
			var sum float64
			for _, row := range matched {
				sum += toFloat(row[col])
			}
			writeJSON(w, http.StatusOK, []map[string]any{{"sum": sum}})
			return
		}
		writeJSON(w, http.StatusOK, project(matched, selectExpr))
	case http.MethodHead:
		matched := s.filterLocked(table, query)
		if r.Header.Get("Prefer") == "count=exact" {
			w.Header().Set("Content-Range", fmt.Sprintf("0-%d/%d", len(matched), len(matched)))
		}
		w.WriteHeader(http.StatusOK)
	case http.MethodPost:
		payload, _ := io.ReadAll(r.Body)
		rows, err := decodeRows(payload)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		created := make([]map[string]any, 0, len(rows))
		for _, row := range rows {
			s.insertLocked(table, row)
			created = append(created, row)
		}
		if strings.Contains(r.Header.Get("Prefer"), "return=representation") {
			writeJSON(w, http.StatusCreated, created)
			return
		}
		w.WriteHeader(http.StatusCreated)
	case http.MethodPatch:
		payload, _ := io.ReadAll(r.Body)
		var patch map[string]any
		if err := json.Unmarshal(payload, &patch); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		matched := s.filterLocked(table, query)
		for _, row := range matched {
			for k, v := range patch {
				row[k] = v
			}
		}
		writeJSON(w, http.StatusOK, matched)
	case http.MethodDelete:
		kept := make([]map[string]any, 0, len(s.tables[table]))
		for _, row := range s.tables[table] {
			if !matches(row, query) {
				kept = append(kept, row)
			}
		}
		s.tables[table] = kept
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *storeStub) filterLocked(table string, query map[string][]string) []map[string]any {
	var matched []map[string]any
	for _, row := range s.tables[table] {
		if matches(row, query) {
			matched = append(matched, row)
		}
	}
	if matched == nil {
		matched = []map[string]any{}
	}
	return matched
}

func matches(row map[string]any, query map[string][]string) bool {
	for col, vals := range query {
		if len(vals) == 0 {
			continue
		}
		op, arg := splitFilter(vals[0])
		cell := fmt.Sprint(row[col])
		switch op {
		case "eq":
			if cell != arg {
				return false
			}
		case "neq":
			if cell == arg {
				return false
			}
		case "gte":
			if compareValues(cell, arg) < 0 {
				return false
			}
		case "gt":
			if compareValues(cell, arg) <= 0 {
				return false
			}
		case "lte":
			if compareValues(cell, arg) > 0 {
				return false
			}
		case "lt":
			if compareValues(cell, arg) >= 0 {
				return false
			}
		case "in":
			arg = strings.TrimSuffix(strings.TrimPrefix(arg, "("), ")")
			found := false
			for _, candidate := range strings.Split(arg, ",") {
				if cell == strings.TrimSpace(candidate) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func splitFilter(val string) (op, arg string) {
	idx := strings.Index(val, ".")
	if idx < 0 {
		return "eq", val
	}
	return val[:idx], val[idx+1:]
}

// compareValues orders numerically when both sides parse as numbers, by
// timestamp when both parse as RFC3339, and lexically otherwise.
func compareValues(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	ta, errA := time.Parse(time.RFC3339, a)
	tb, errB := time.Parse(time.RFC3339, b)
	if errA == nil && errB == nil {
		switch {
		case ta.Before(tb):
			return -1
		case ta.After(tb):
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

func project(rows []map[string]any, selectExpr string) []map[string]any {
	if selectExpr == "" || selectExpr == "*" {
		return rows
	}
	cols := strings.Split(selectExpr, ",")
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		p := map[string]any{}
		for _, col := range cols {
			col = strings.TrimSpace(col)
			if v, ok := row[col]; ok {
				p[col] = v
			}
		}
		out = append(out, p)
	}
	return out
}

func decodeRows(payload []byte) ([]map[string]any, error) {
	trimmed := strings.TrimSpace(string(payload))
	if strings.HasPrefix(trimmed, "[") {
		var rows []map[string]any
		if err := json.Unmarshal(payload, &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}
	var row map[string]any
	if err := json.Unmarshal(payload, &row); err != nil {
		return nil, err
	}
	return []map[string]any{row}, nil
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case uint:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	}
	return 0
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
