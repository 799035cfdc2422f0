package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/wonny/sectorpulse/pkg/config"
	"github.com/wonny/sectorpulse/pkg/httputil"
)

func newTestDirectory(t *testing.T, handler http.HandlerFunc) *SectorDirectory {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := testLogger()
	httpClient := httputil.New(&config.Config{}, log).DisableRetry()
	return NewSectorDirectory(server.URL, httpClient, log)
}

func TestSectorDirectory_BoardCode(t *testing.T) {
	directory := newTestDirectory(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, boardListHTML)
	})

	code, err := directory.BoardCode(context.Background(), "银行")
	if err != nil {
		t.Fatalf("BoardCode failed: %v", err)
	}
	if code != "BK0475" {
		t.Errorf("code = %s, want BK0475", code)
	}
}

func TestSectorDirectory_ListFetchedOnce(t *testing.T) {
	fetches := 0
	directory := newTestDirectory(t, func(w http.ResponseWriter, r *http.Request) {
		fetches++
		fmt.Fprint(w, boardListHTML)
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := directory.BoardCode(ctx, "航空机场"); err != nil {
			t.Fatalf("BoardCode failed: %v", err)
		}
	}

	if fetches != 1 {
		t.Errorf("board list fetched %d times, want 1", fetches)
	}
}

func TestSectorDirectory_Sectors(t *testing.T) {
	directory := newTestDirectory(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, boardListHTML)
	})

	sectors, err := directory.Sectors(context.Background())
	if err != nil {
		t.Fatalf("Sectors failed: %v", err)
	}

	// Sorted; the non-board link is excluded.
	want := []string{"航空机场", "银行"}
	if !reflect.DeepEqual(sectors, want) {
		t.Errorf("sectors = %v, want %v", sectors, want)
	}
}

func TestSectorDirectory_EmptyPage(t *testing.T) {
	directory := newTestDirectory(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>maintenance</p></body></html>")
	})

	if _, err := directory.BoardCode(context.Background(), "银行"); err == nil {
		t.Error("expected error for page without board links")
	}
}
