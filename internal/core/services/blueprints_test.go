package services

import (
	"context"
	"errors"
	"testing"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

func TestBlueprintService_Generate(t *testing.T) {
	tests := []struct {
		name         string
		generator    *mockGenerator
		fallback     *mockGenerator
		repo         *mockBlueprintRepo
		wantErr      bool
		wantSongID   string
		wantFallback bool
	}{
		{
			name:       "primary succeeds",
			generator:  &mockGenerator{blueprint: domain.Blueprint{SongID: "song-primary"}},
			fallback:   &mockGenerator{blueprint: domain.Blueprint{SongID: "song-fallback"}},
			repo:       &mockBlueprintRepo{},
			wantSongID: "song-primary",
		},
		{
			name:         "primary fails, fallback used",
			generator:    &mockGenerator{err: errors.New("model offline")},
			fallback:     &mockGenerator{blueprint: domain.Blueprint{SongID: "song-fallback"}},
			repo:         &mockBlueprintRepo{},
			wantSongID:   "song-fallback",
			wantFallback: true,
		},
		{
			name:      "primary fails without fallback",
			generator: &mockGenerator{err: errors.New("model offline")},
			repo:      &mockBlueprintRepo{},
			wantErr:   true,
		},
		{
			name:      "save error surfaces",
			generator: &mockGenerator{blueprint: domain.Blueprint{SongID: "song-primary"}},
			repo:      &mockBlueprintRepo{saveErr: errors.New("disk full")},
			wantErr:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var fallback *mockGenerator
			svc := NewBlueprintService(tc.generator, nil, tc.repo)
			if tc.fallback != nil {
				fallback = tc.fallback
				svc = NewBlueprintService(tc.generator, fallback, tc.repo)
			}

			bp, err := svc.Generate(context.Background(), domain.BlueprintRequest{Prompt: "x"})
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}

			if bp.SongID != tc.wantSongID {
				t.Errorf("song id = %q, want %q", bp.SongID, tc.wantSongID)
			}
			if tc.repo.saved == nil || tc.repo.saved.SongID != tc.wantSongID {
				t.Errorf("saved blueprint = %+v", tc.repo.saved)
			}
			if tc.wantFallback && fallback.calls == 0 {
				t.Error("fallback generator was not called")
			}
			if !tc.wantFallback && fallback != nil && fallback.calls > 0 {
				t.Error("fallback generator called on primary success")
			}
		})
	}
}

func TestBlueprintService_Get(t *testing.T) {
	repo := &mockBlueprintRepo{stored: map[string]domain.Blueprint{
		"song-1": {SongID: "song-1", Title: "Stored"},
	}}
	svc := NewBlueprintService(&mockGenerator{}, nil, repo)

	bp, err := svc.Get(context.Background(), "song-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if bp.Title != "Stored" {
		t.Errorf("title = %q", bp.Title)
	}

	_, err = svc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
