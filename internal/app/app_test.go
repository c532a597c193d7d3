package app

import (
	"testing"

	"github.com/riskibarqy/scorecast/internal/config"
	"github.com/riskibarqy/scorecast/internal/platform/logging"
)

func TestNewHTTPServer_MemoryStorage(t *testing.T) {
	cfg := config.Config{
		HTTPAddr:           ":0",
		StorageDriver:      config.StorageMemory,
		CORSAllowedOrigins: []string{"*"},
	}

	srv, closeFn, err := NewHTTPServer(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.Handler == nil {
		t.Fatalf("expected router to be set")
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close storage: %v", err)
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	if _, _, err := NewHTTPServer(config.Config{StorageDriver: config.StorageMemory}, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestNewStorage_RejectsUnknownDriver(t *testing.T) {
	if _, err := NewStorage(config.Config{StorageDriver: "sqlite"}, logging.NewNop()); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}

func TestNewSources_UsesCatalogOddsScope(t *testing.T) {
	sources, err := NewSources(config.Config{}, logging.NewNop())
	if err != nil {
		t.Fatalf("new sources: %v", err)
	}
	if sources.Odds.SportKey() != sources.Catalog.Odds.SportKey {
		t.Fatalf("expected odds client scoped to %q, got %q", sources.Catalog.Odds.SportKey, sources.Odds.SportKey())
	}
	if sources.Catalog.AllowList().Len() == 0 {
		t.Fatalf("expected embedded catalog leagues")
	}
}
