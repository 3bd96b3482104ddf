package validators

import "go.mongodb.org/mongo-driver/bson"

var listingProperties = bson.M{
	"_id":              bson.M{"bsonType": "objectId"},
	"origin":           bson.M{"enum": []string{"admin", "user"}},
	"project_name":     bson.M{"bsonType": "string", "minLength": 1, "maxLength": 200},
	"builder_name":     bson.M{"bsonType": "string"},
	"builder_name_raw": bson.M{"bsonType": "string"},
	"base_location":    bson.M{"bsonType": "string"},
	"photos": bson.M{
		"bsonType": "array",
		"maxItems": 3,
		"items":    bson.M{"bsonType": "string"},
	},
	"created_at": bson.M{"bsonType": "date"},
}

var ProjectValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"project_name", "created_at"},
		"additionalProperties": true,
		"properties":           listingProperties,
	},
}

var UserPropertyValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"project_name", "owner_name", "owner_email", "owner_phone", "created_at"},
		"additionalProperties": true,
		"properties": merge(listingProperties, bson.M{
			"owner_name":  bson.M{"bsonType": "string", "minLength": 1},
			"owner_email": bson.M{"bsonType": "string"},
			"owner_phone": bson.M{"bsonType": "string", "pattern": "^[6-9][0-9]{9}$"},
		}),
	},
}
