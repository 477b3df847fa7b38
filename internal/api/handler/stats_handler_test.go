package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/pokedex/pokedex-api/internal/core/domain"
)

func TestStatsHandler_Overview(t *testing.T) {
	var gotAttr domain.Attribute
	handler := NewStatsHandler(&stubStatsService{
		overviewFn: func(_ context.Context, attr domain.Attribute) (*domain.StatsOverview, error) {
			gotAttr = attr
			return &domain.StatsOverview{
				TotalPokemons: 1,
				CountByType:   []domain.TypeCount{{Type: domain.TypeElectric, Count: 1}},
				AverageAttr:   domain.AttrAttack,
				HighestAttack: pikachu(),
			}, nil
		},
	})

	c, rec := newContext(http.MethodGet, "/api/stats?attribute=Attack", "")
	if err := handler.Overview(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotAttr != "Attack" {
		t.Fatalf("expected the raw attribute to be forwarded, got %q", gotAttr)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["totalPokemons"] != float64(1) || resp["averageAttribute"] != "Attack" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestStatsHandler_Overview_UnknownAttribute(t *testing.T) {
	handler := NewStatsHandler(&stubStatsService{
		overviewFn: func(_ context.Context, attr domain.Attribute) (*domain.StatsOverview, error) {
			_, err := domain.ParseAttribute(string(attr))
			return nil, err
		},
	})

	c, _ := newContext(http.MethodGet, "/api/stats?attribute=Luck", "")
	if err := handler.Overview(c); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
