package status

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/expense-tracker/internal/handlers/apierror"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error { return f.err }

func newTestAPI(t *testing.T, store pinger) humatest.TestAPI {
	apierror.Install(false)
	cfg := huma.DefaultConfig("Test API", "1.0.0")
	cfg.CreateHooks = nil
	_, api := humatest.New(t, cfg)
	NewHandler(store).Register(api)
	return api
}

func TestHealth_IgnoresStore(t *testing.T) {
	api := newTestAPI(t, fakePinger{err: errors.New("connection refused")})

	resp := api.Get("/health")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"success":true}`, resp.Body.String())
}

func TestReady_StoreUp(t *testing.T) {
	api := newTestAPI(t, fakePinger{})

	resp := api.Get("/ready")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"success":true}`, resp.Body.String())
}

func TestReady_StoreDown(t *testing.T) {
	api := newTestAPI(t, fakePinger{err: errors.New("server selection timeout")})

	resp := api.Get("/ready")

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.JSONEq(t, `{"success":false,"message":"Something went wrong!"}`, resp.Body.String())
}
