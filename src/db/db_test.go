package db

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Prefer string
	APIKey string
	Auth   string
}

func newCaptureServer(status int, body string, out *capturedRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		out.Method = r.Method
		out.Path = r.URL.Path
		out.Query = map[string]string{}
		for k, v := range r.URL.Query() {
			out.Query[k] = v[0]
		}
		out.Prefer = r.Header.Get("Prefer")
		out.APIKey = r.Header.Get("apikey")
		out.Auth = r.Header.Get("Authorization")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestSelectFilterEncoding(t *testing.T) {
	var captured capturedRequest
	srv := newCaptureServer(200, "[]", &captured)
	defer srv.Close()
	c := NewClient(srv.URL, "key123")

	_, err := c.Select(context.Background(), "pedidos", "id_pedido,total", Filters{
		"id_restaurante":    "7",
		"fecha_hora_pedido": Gte("2026-01-01T00:00:00Z"),
		"id_menu":           In("1", "2", "3"),
	})
	assert.Nil(t, err)
	assert.Equal(t, "GET", captured.Method)
	assert.Equal(t, "/rest/v1/pedidos", captured.Path)
	assert.Equal(t, "id_pedido,total", captured.Query["select"])
	assert.Equal(t, "eq.7", captured.Query["id_restaurante"])
	assert.Equal(t, "gte.2026-01-01T00:00:00Z", captured.Query["fecha_hora_pedido"])
	assert.Equal(t, "in.(1,2,3)", captured.Query["id_menu"])
	assert.Equal(t, "key123", captured.APIKey)
	assert.Equal(t, "Bearer key123", captured.Auth)
}

// Operator syntax arriving in a plain string value must stay data: QR tokens,
// emails and bearer tokens all travel through Filters.
func TestFilterValueCannotSmuggleOperator(t *testing.T) {
	var captured capturedRequest
	srv := newCaptureServer(200, "[]", &captured)
	defer srv.Close()
	c := NewClient(srv.URL, "key123")

	_, err := c.Select(context.Background(), "mesa", "*", Filters{
		"codigo_qr": "gte.0",
	})
	assert.Nil(t, err)
	assert.Equal(t, "eq.gte.0", captured.Query["codigo_qr"])

	_, err = c.Select(context.Background(), "gerentes", "*", Filters{
		"correo_electronico": "is.abc@x.com",
	})
	assert.Nil(t, err)
	assert.Equal(t, "eq.is.abc@x.com", captured.Query["correo_electronico"])
}

func TestSelectStarOmitsProjection(t *testing.T) {
	var captured capturedRequest
	srv := newCaptureServer(200, "[]", &captured)
	defer srv.Close()
	c := NewClient(srv.URL, "key123")

	_, err := c.Select(context.Background(), "mesa", "*", nil)
	assert.Nil(t, err)
	_, hasSelect := captured.Query["select"]
	assert.False(t, hasSelect)
}

func TestInsertPreferHeader(t *testing.T) {
	var captured capturedRequest
	srv := newCaptureServer(201, `[{"id_mesa":1}]`, &captured)
	defer srv.Close()
	c := NewClient(srv.URL, "key123")

	body, err := c.Insert(context.Background(), "mesa", map[string]any{"numero_mesa": "001"}, true)
	assert.Nil(t, err)
	assert.Equal(t, "return=representation", captured.Prefer)
	assert.Equal(t, `[{"id_mesa":1}]`, string(body))

	_, err = c.Insert(context.Background(), "mesa", map[string]any{"numero_mesa": "002"}, false)
	assert.Nil(t, err)
	assert.Equal(t, "return=minimal", captured.Prefer)
}

func TestUpdateWhereReturnsRepresentation(t *testing.T) {
	var captured capturedRequest
	srv := newCaptureServer(200, `[]`, &captured)
	defer srv.Close()
	c := NewClient(srv.URL, "key123")

	body, err := c.UpdateWhere(context.Background(), "atencion", Filters{
		"id_atencion": "4",
		"estado":      "Pendiente",
	}, map[string]string{"estado": "Atendida"})
	assert.Nil(t, err)
	assert.Equal(t, "PATCH", captured.Method)
	assert.Equal(t, "return=representation", captured.Prefer)
	assert.Equal(t, "eq.4", captured.Query["id_atencion"])
	assert.Equal(t, "eq.Pendiente", captured.Query["estado"])
	// empty array is how a lost compare-and-swap surfaces
	assert.Equal(t, "[]", string(body))
}

func TestUpstreamError(t *testing.T) {
	var captured capturedRequest
	srv := newCaptureServer(409, `{"message":"duplicate key"}`, &captured)
	defer srv.Close()
	c := NewClient(srv.URL, "key123")

	_, err := c.Select(context.Background(), "gerentes", "*", nil)
	assert.NotNil(t, err)
	var ue *UpstreamError
	assert.ErrorAs(t, err, &ue)
	assert.Equal(t, 409, ue.Status)
	assert.False(t, IsTransient(err))
}

func TestTimeoutIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()
	c := NewClient(srv.URL, "key123")
	c.http.Timeout = 20 * time.Millisecond

	_, err := c.Select(context.Background(), "mesa", "*", nil)
	assert.NotNil(t, err)
	assert.True(t, IsTransient(err))
}

func TestSumWhere(t *testing.T) {
	var captured capturedRequest
	srv := newCaptureServer(200, `[{"sum":415.5}]`, &captured)
	defer srv.Close()
	c := NewClient(srv.URL, "key123")

	sum, err := c.SumWhere(context.Background(), "pedidos", "total", Filters{"id_restaurante": "3"})
	assert.Nil(t, err)
	assert.Equal(t, 415.5, sum)
	assert.Equal(t, "total.sum()", captured.Query["select"])
}

func TestSumWhereEmpty(t *testing.T) {
	var captured capturedRequest
	srv := newCaptureServer(200, `[{"sum":null}]`, &captured)
	defer srv.Close()
	c := NewClient(srv.URL, "key123")

	sum, err := c.SumWhere(context.Background(), "pedidos", "total", nil)
	assert.Nil(t, err)
	assert.Equal(t, 0.0, sum)
}

func TestCountWhere(t *testing.T) {
	var prefer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prefer = r.Header.Get("Prefer")
		assert.Equal(t, "HEAD", r.Method)
		w.Header().Set("Content-Range", "0-24/3573")
		w.WriteHeader(200)
	}))
	defer srv.Close()
	c := NewClient(srv.URL, "key123")

	n, err := c.CountWhere(context.Background(), "pedidos", Filters{"id_restaurante": "3"})
	assert.Nil(t, err)
	assert.Equal(t, int64(3573), n)
	assert.Equal(t, "count=exact", prefer)
}

func TestCountWhereTimeoutIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()
	c := NewClient(srv.URL, "key123")
	c.http.Timeout = 20 * time.Millisecond

	_, err := c.CountWhere(context.Background(), "pedidos", nil)
	assert.NotNil(t, err)
	assert.True(t, IsTransient(err))
}

func TestCountWhereMissingRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer srv.Close()
	c := NewClient(srv.URL, "key123")

	_, err := c.CountWhere(context.Background(), "pedidos", nil)
	assert.NotNil(t, err)
}
