package repository

import (
	"testing"

	"estatehub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildSearchFilter(t *testing.T) {
	f := BuildSearchFilter(model.ListingQuery{
		Location:    "noida ext",
		BHK:         "3+",
		Builder:     "homecraft",
		Status:      "Ready to Move",
		ProjectType: "Residential",
		SearchTerm:  "sky",
	})

	if f["base_location"] != "Noida Extension" {
		t.Errorf("expected normalized location, got %v", f["base_location"])
	}
	if f["bhk"].(bson.M)["$regex"] != `3\+` {
		t.Errorf("expected escaped bhk, got %v", f["bhk"])
	}
	if f["builder_name"].(bson.M)["$regex"] != "ATS Homekraft" {
		t.Errorf("expected normalized builder, got %v", f["builder_name"])
	}
	if f["status_possession"] != "Ready to Move" {
		t.Errorf("unexpected status filter %v", f["status_possession"])
	}
	if f["project_type"].(bson.M)["$regex"] != "^Residential$" {
		t.Errorf("unexpected project type filter %v", f["project_type"])
	}
	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 4 {
		t.Fatalf("expected four search term branches, got %v", f["$or"])
	}
}

func TestBuildSearchFilter_Empty(t *testing.T) {
	if f := BuildSearchFilter(model.ListingQuery{Location: "  "}); len(f) != 0 {
		t.Errorf("expected empty filter, got %v", f)
	}
}

func TestLocationFilter_NoidaExtensionIsExact(t *testing.T) {
	f := LocationFilter("Noida Extension")
	if f["base_location"] != "Noida Extension" {
		t.Errorf("expected exact match on Noida Extension, got %v", f)
	}
	if _, isRegex := f["base_location"].(bson.M); isRegex {
		t.Error("location lookups must not use a regex")
	}
}

func TestBuilderFilter(t *testing.T) {
	f := BuilderFilter("homecraft")
	if f["builder_name"].(bson.M)["$regex"] != "^A" {
		t.Errorf("expected first-letter prefix of the normalized builder, got %v", f)
	}
	if BuilderFilter("   ") != nil {
		t.Error("expected nil filter for blank builder")
	}
}
