package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/kirillkom/library-searchbox/internal/core/domain"
)

func TestResolveFollowsCaseVariant(t *testing.T) {
	names := &nameServiceFake{results: map[string]domain.NameResult{
		"genesis": {Completions: []string{"Genesis"}},
		"Genesis": {IsRef: true, Ref: "Genesis", IsBook: true, Completions: []string{"Genesis"}},
	}}
	uc := NewResolveUseCase(names)

	res, err := uc.Resolve(context.Background(), "genesis")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Kind != domain.ResolutionRef || res.ID.String() != "Genesis" || !res.IsBook {
		t.Fatalf("unexpected resolution: %+v", res)
	}
	if !equalCalls(names.calls, []string{"genesis", "Genesis"}) {
		t.Fatalf("unexpected name calls: %v", names.calls)
	}

	again, err := uc.Resolve(context.Background(), "Genesis")
	if err != nil {
		t.Fatalf("Resolve() again error = %v", err)
	}
	if again.Kind != res.Kind || again.ID.String() != res.ID.String() || again.IsBook != res.IsBook {
		t.Fatalf("expected corrected query to resolve identically, got %+v", again)
	}
}

func TestResolveFollowsGershayimVariant(t *testing.T) {
	names := &nameServiceFake{results: map[string]domain.NameResult{
		`שו"ע`: {Completions: []string{"שו״ע"}},
		"שו״ע": {TopicSlug: "shulchan-arukh", Completions: []string{"שו״ע"}},
	}}
	res, err := NewResolveUseCase(names).Resolve(context.Background(), `שו"ע`)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Kind != domain.ResolutionTopic || res.ID.String() != "shulchan-arukh" {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestResolveStopsOnCorrectionCycle(t *testing.T) {
	names := &nameServiceFake{results: map[string]domain.NameResult{
		"abc": {CaseVariant: "ABC"},
		"ABC": {CaseVariant: "abc"},
	}}
	res, err := NewResolveUseCase(names).Resolve(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Kind != domain.ResolutionSearch || res.ID.String() != "ABC" {
		t.Fatalf("unexpected resolution: %+v", res)
	}
	if len(names.calls) != 2 {
		t.Fatalf("expected 2 name calls, got %v", names.calls)
	}
}

func TestResolveClassifiesObjectKinds(t *testing.T) {
	names := &nameServiceFake{results: map[string]domain.NameResult{
		"torah": {Type: "TocCategory", Key: domain.PathKey("Tanakh", "Torah")},
	}}
	res, err := NewResolveUseCase(names).Resolve(context.Background(), "torah")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Kind != domain.ResolutionTocCategory || !res.ID.IsPath() {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestResolvePropagatesServiceError(t *testing.T) {
	errService := errors.New("name service down")
	_, err := NewResolveUseCase(&nameServiceFake{err: errService}).Resolve(context.Background(), "zzz")
	if !errors.Is(err, errService) {
		t.Fatalf("expected service error, got %v", err)
	}
}

func TestResolveRejectsEmptyQuery(t *testing.T) {
	names := &nameServiceFake{}
	_, err := NewResolveUseCase(names).Resolve(context.Background(), "  ")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if names.callCount() != 0 {
		t.Fatalf("expected no name calls")
	}
}
