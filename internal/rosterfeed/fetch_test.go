package rosterfeed

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/pitchsim/internal/engine"
	"github.com/jstittsworth/pitchsim/internal/rosterio"
)

func sampleRosterFile(t *testing.T) []byte {
	t.Helper()
	r, err := engine.NewRoster("Rovers", []engine.Player{
		{Name: "Smith", Age: 27, Nationality: "ENG", PreferredSide: "C",
			St: 50, Tk: 50, Ps: 50, Sh: 50, Sm: 70, Ag: 40,
			KAb: 300, TAb: 300, PAb: 300, SAb: 300, Fit: 95},
	})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, rosterio.Write(&buf, &r))
	return buf.Bytes()
}

func TestFetchRosterParsesBody(t *testing.T) {
	body := sampleRosterFile(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, time.Second, 100, logrus.StandardLogger())
	roster, err := f.FetchRoster(context.Background(), "Rovers")
	require.NoError(t, err)
	assert.Equal(t, "Rovers", roster.Team)
}

func TestFetchRosterReturnsErrorOnNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, time.Second, 100, logrus.StandardLogger())
	_, err := f.FetchRoster(context.Background(), "Rovers")
	assert.Error(t, err)
}
