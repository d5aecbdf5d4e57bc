package bench_http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func checkInputs(url string, expect int64) model.Inputs {
	return model.NewInputs(
		[]model.InputSpec{{Name: "url", Type: cty.String}, {Name: "expect_status", Type: cty.Number}},
		[]cty.Value{cty.StringVal(url), cty.NumberIntVal(expect)},
	)
}

func TestCheckEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			_, _ = io.WriteString(w, "OK")
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	h := handlers.NewFromModules(&Module{Client: NewClient(time.Second)})
	check, ok := h.Get("HTTPCheckEndpoint")
	require.True(t, ok)

	out, err := check(context.Background(), checkInputs(srv.URL+"/health", 200))
	require.NoError(t, err)
	assert.True(t, out.Success, out.Message)

	out, err = check(context.Background(), checkInputs(srv.URL+"/missing", 200))
	require.NoError(t, err)
	assert.False(t, out.Success)

	out, err = check(context.Background(), checkInputs(srv.URL+"/missing", 404))
	require.NoError(t, err)
	assert.True(t, out.Success)
}

func TestPostJSON(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		got = string(b)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	h := handlers.NewFromModules(&Module{Client: srv.Client()})
	post, _ := h.Get("HTTPPostJSON")
	out, err := post(context.Background(), model.NewInputs(
		[]model.InputSpec{{Name: "url", Type: cty.String}, {Name: "body", Type: cty.String}, {Name: "expect_status", Type: cty.Number}},
		[]cty.Value{cty.StringVal(srv.URL), cty.StringVal(`{"mode":"sleep"}`), cty.NumberIntVal(202)},
	))
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, `{"mode":"sleep"}`, got)
}

func TestCheckEndpoint_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	h := handlers.NewFromModules(&Module{Client: NewClient(time.Second)})
	check, _ := h.Get("HTTPCheckEndpoint")
	_, err := check(context.Background(), checkInputs(url, 200))
	require.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", string(truncate([]byte("abc"), 5)))
	assert.Equal(t, "ab...", string(truncate([]byte("abcdef"), 2)))
}
