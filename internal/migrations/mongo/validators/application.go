package validators

import "go.mongodb.org/mongo-driver/bson"

var ApplicationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "email", "phone", "position", "status", "created_at"},
		"additionalProperties": true,
		"properties": merge(contactProperties, bson.M{
			"position":   bson.M{"bsonType": "string", "minLength": 1, "maxLength": 100},
			"resume_url": bson.M{"bsonType": "string"},
			"status": bson.M{
				"enum": []string{"pending", "reviewed", "shortlisted", "rejected", "hired"},
			},
		}),
	},
}

var AdminValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"email", "password_hash", "role", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":                  bson.M{"bsonType": "objectId"},
			"email":                bson.M{"bsonType": "string"},
			"password_hash":        bson.M{"bsonType": "string", "minLength": 1},
			"role":                 bson.M{"bsonType": "string"},
			"reset_otp_hash":       bson.M{"bsonType": "string"},
			"reset_otp_expires_at": bson.M{"bsonType": "date"},
			"created_at":           bson.M{"bsonType": "date"},
		},
	},
}
