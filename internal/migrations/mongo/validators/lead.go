package validators

import "go.mongodb.org/mongo-driver/bson"

var contactProperties = bson.M{
	"_id":        bson.M{"bsonType": "objectId"},
	"name":       bson.M{"bsonType": "string", "minLength": 1, "maxLength": 100},
	"email":      bson.M{"bsonType": "string", "maxLength": 254},
	"phone":      bson.M{"bsonType": "string", "pattern": "^[6-9][0-9]{9}$"},
	"created_at": bson.M{"bsonType": "date"},
	"updated_at": bson.M{"bsonType": "date"},
}

// LeadValidator is shared by every lead collection. Status is optional because only
// some kinds track it.
var LeadValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"kind", "name", "email", "phone", "created_at"},
		"additionalProperties": true,
		"properties": merge(contactProperties, bson.M{
			"kind":          bson.M{"bsonType": "string"},
			"message":       bson.M{"bsonType": "string", "maxLength": 2000},
			"builder_name":  bson.M{"bsonType": "string"},
			"location":      bson.M{"bsonType": "string"},
			"base_location": bson.M{"bsonType": "string"},
			"status": bson.M{
				"bsonType": "string",
				"enum":     []string{"pending", "contacted", "converted", "not_interested"},
			},
		}),
	},
}

func merge(base, extra bson.M) bson.M {
	out := make(bson.M, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
