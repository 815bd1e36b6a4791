package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSilentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestDeriveOrigin(t *testing.T) {
	testCases := []struct {
		name    string
		pageURL string
		want    string
		wantErr bool
	}{
		{name: "Same host, fixed port", pageURL: "http://192.168.0.5:5500/index.html", want: "http://192.168.0.5:8001"},
		{name: "Scheme kept", pageURL: "https://sisregip.local/board", want: "https://sisregip.local:8001"},
		{name: "Missing host", pageURL: "index.html", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DeriveOrigin(tc.pageURL)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestListProtocolsNormalizesIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/protocols", r.URL.Path)
		w.Write([]byte(`[{"ID":7,"PROT":"100"},{"ID":"8","PROT":"200"}]`))
	}))
	defer server.Close()

	client := New(server.URL, nil, newSilentLogger())
	protocols, err := client.ListProtocols(context.Background())
	require.NoError(t, err)
	require.Len(t, protocols, 2)
	assert.Equal(t, ID(7), protocols[0].ID)
	assert.Equal(t, ID(8), protocols[1].ID)
}

func TestMutationsCarryOperator(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = map[string]interface{}{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"success":true,"message":"ok"}`))
	}))
	defer server.Close()

	t.Run("Session operator", func(t *testing.T) {
		client := New(server.URL, func() string { return "MARIA" }, newSilentLogger())
		_, err := client.EditProtocol(context.Background(), 12, ProtocolFields{Prot: "100", Name: "Ana"})
		require.NoError(t, err)
		assert.Equal(t, "MARIA", captured["OPERADOR"])
		assert.Equal(t, float64(12), captured["ID"])
		assert.Equal(t, "Ana", captured["NOME"])
	})

	t.Run("Unidentified fallback", func(t *testing.T) {
		client := New(server.URL, func() string { return "" }, newSilentLogger())
		_, err := client.DeleteProtocol(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"ID": float64(3), "OPERADOR": "NÃO IDENTIFICADO"}, captured)
	})
}

func TestServerMessageOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"status_code":409,"success":false,"message":"Já existe um protocolo ativo com este número."}`))
	}))
	defer server.Close()

	client := New(server.URL, nil, newSilentLogger())
	_, err := client.AddProtocol(context.Background(), ProtocolFields{Prot: "100"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Já existe um protocolo ativo com este número.", AlertMessage(err))
}

func TestSuccessFalseEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"Erro ao carregar dados da Secretaria."}`))
	}))
	defer server.Close()

	client := New(server.URL, nil, newSilentLogger())
	_, err := client.ListSecretaria(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Erro ao carregar dados da Secretaria.", AlertMessage(err))
}

func TestCommunicationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	origin := server.URL
	server.Close()

	client := New(origin, nil, newSilentLogger())
	_, err := client.ListProtocols(context.Background())
	require.Error(t, err)
	assert.Contains(t, AlertMessage(err), "Erro de comunicação: ")
}

func TestListPDFs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "/docs", body["folder_path"])
		w.Write([]byte(`{"success":true,"files":["b.pdf","a.pdf"]}`))
	}))
	defer server.Close()

	client := New(server.URL, nil, newSilentLogger())
	files, err := client.ListPDFs(context.Background(), "/docs")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.pdf", "a.pdf"}, files)
}
