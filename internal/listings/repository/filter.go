package repository

import (
	"strings"

	"estatehub/pkg/model"
	"estatehub/pkg/normalizer"
	"estatehub/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/bson"
)

func contains(s string) bson.M {
	return bson.M{"$regex": sanitizer.EscapeRegex(s), "$options": "i"}
}

// BuildSearchFilter turns the public search parameters into a listing filter.
func BuildSearchFilter(q model.ListingQuery) bson.M {
	filter := bson.M{}

	if loc := strings.TrimSpace(q.Location); loc != "" {
		filter["base_location"] = normalizer.Location(loc)
	}
	if bhk := strings.TrimSpace(q.BHK); bhk != "" {
		filter["bhk"] = contains(bhk)
	}
	if builder := strings.TrimSpace(q.Builder); builder != "" {
		filter["builder_name"] = contains(normalizer.BuilderName(builder))
	}
	if status := strings.TrimSpace(q.Status); status != "" {
		filter["status_possession"] = status
	}
	if pt := strings.TrimSpace(q.ProjectType); pt != "" {
		filter["project_type"] = bson.M{"$regex": "^" + sanitizer.EscapeRegex(pt) + "$", "$options": "i"}
	}
	if term := strings.TrimSpace(q.SearchTerm); term != "" {
		filter["$or"] = bson.A{
			bson.M{"project_name": contains(term)},
			bson.M{"builder_name": contains(term)},
			bson.M{"location": contains(term)},
			bson.M{"base_location": normalizer.Location(term)},
		}
	}

	return filter
}

// LocationFilter matches the normalized base location exactly, so "Noida Extension" never
// returns plain "Noida" listings.
func LocationFilter(raw string) bson.M {
	return bson.M{"base_location": normalizer.Location(strings.TrimSpace(raw))}
}

// BuilderFilter matches builders sharing the first letter of the normalized name.
func BuilderFilter(raw string) bson.M {
	name := normalizer.BuilderName(strings.TrimSpace(raw))
	if name == "" {
		return nil
	}
	first := []rune(name)[0]
	return bson.M{"builder_name": bson.M{"$regex": "^" + sanitizer.EscapeRegex(string(first)), "$options": "i"}}
}
