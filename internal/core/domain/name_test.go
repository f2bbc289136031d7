package domain

import "testing"

func TestRepairCaseVariantReplacesLeadingPart(t *testing.T) {
	res := NameResult{Completions: []string{"Genesis"}}
	got := res.RepairCaseVariant("genesis 1:1")
	if got != "Genesis 1:1" {
		t.Fatalf("expected case repair, got %q", got)
	}
}

func TestRepairCaseVariantKeepsQueryWhenAlreadyCorrect(t *testing.T) {
	res := NameResult{Completions: []string{"Genesis"}}
	if got := res.RepairCaseVariant("Genesis 2"); got != "Genesis 2" {
		t.Fatalf("expected unchanged query, got %q", got)
	}
	if got := res.RepairCaseVariant("Genesis"); got != "Genesis" {
		t.Fatalf("expected unchanged query, got %q", got)
	}
}

func TestRepairCaseVariantIgnoresRefsAndShortQueries(t *testing.T) {
	ref := NameResult{IsRef: true, Completions: []string{"Genesis"}}
	if got := ref.RepairCaseVariant("genesis"); got != "genesis" {
		t.Fatalf("refs must not be repaired, got %q", got)
	}
	short := NameResult{Completions: []string{"Genesis"}}
	if got := short.RepairCaseVariant("gen"); got != "gen" {
		t.Fatalf("expected unchanged short query, got %q", got)
	}
	different := NameResult{Completions: []string{"Exodus"}}
	if got := different.RepairCaseVariant("genesis"); got != "genesis" {
		t.Fatalf("expected unchanged query, got %q", got)
	}
}

func TestRepairCaseVariantPrefersServiceField(t *testing.T) {
	res := NameResult{CaseVariant: "Berakhot", Completions: []string{"Genesis"}}
	if got := res.RepairCaseVariant("berakhot"); got != "Berakhot" {
		t.Fatalf("expected service case variant, got %q", got)
	}
}

func TestRepairGershayimVariant(t *testing.T) {
	res := NameResult{Completions: []string{"שו״ע", "שולחן ערוך"}}
	if got := res.RepairGershayimVariant(`שו"ע`); got != "שו״ע" {
		t.Fatalf("expected gershayim repair, got %q", got)
	}
	if got := res.RepairGershayimVariant("שו״ע"); got != "שו״ע" {
		t.Fatalf("expected exact completion unchanged, got %q", got)
	}
	if got := res.RepairGershayimVariant("other"); got != "other" {
		t.Fatalf("expected unchanged query, got %q", got)
	}
}

func TestRepairGershayimVariantSwapsFirstMarkOnly(t *testing.T) {
	res := NameResult{Completions: []string{"ר״ת״ם", "ר״ת\"ם"}}
	if got := res.RepairGershayimVariant(`ר"ת"ם`); got != "ר״ת\"ם" {
		t.Fatalf("expected the completion with one gershayim, got %q", got)
	}

	only := NameResult{Completions: []string{"ר״ת״ם"}}
	if got := only.RepairGershayimVariant(`ר"ת"ם`); got != `ר"ת"ם` {
		t.Fatalf("expected unchanged query, got %q", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		res  NameResult
		want QueryResolution
	}{
		{
			name: "ref",
			res:  NameResult{IsRef: true, Ref: "Genesis 1", IsBook: false},
			want: QueryResolution{Kind: ResolutionRef, ID: ScalarKey("Genesis 1")},
		},
		{
			name: "book",
			res:  NameResult{IsRef: true, Ref: "Genesis", IsBook: true},
			want: QueryResolution{Kind: ResolutionRef, ID: ScalarKey("Genesis"), IsBook: true},
		},
		{
			name: "topic",
			res:  NameResult{TopicSlug: "shabbat"},
			want: QueryResolution{Kind: ResolutionTopic, ID: ScalarKey("shabbat")},
		},
		{
			name: "toc category",
			res:  NameResult{Type: "TocCategory", Key: PathKey("Tanakh", "Torah")},
			want: QueryResolution{Kind: ResolutionTocCategory, ID: PathKey("Tanakh", "Torah")},
		},
		{
			name: "collection",
			res:  NameResult{Type: "Collection", Key: ScalarKey("c1")},
			want: QueryResolution{Kind: ResolutionCollection, ID: ScalarKey("c1")},
		},
		{
			name: "fallback",
			res:  NameResult{Type: "User", Key: ScalarKey("u")},
			want: QueryResolution{Kind: ResolutionSearch, ID: ScalarKey("raw query")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.res.Classify("raw query")
			if got.Kind != tt.want.Kind || got.ID.String() != tt.want.ID.String() || got.IsBook != tt.want.IsBook {
				t.Fatalf("Classify() = %+v, want %+v", got, tt.want)
			}
			if got.ID.IsPath() != tt.want.ID.IsPath() {
				t.Fatalf("expected path key %v, got %v", tt.want.ID.IsPath(), got.ID.IsPath())
			}
		})
	}
}
