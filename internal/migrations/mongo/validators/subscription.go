package validators

import "go.mongodb.org/mongo-driver/bson"

var SubscriptionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"email", "status", "source", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":             bson.M{"bsonType": "objectId"},
			"email":           bson.M{"bsonType": "string", "maxLength": 254},
			"status":          bson.M{"enum": []string{"active", "unsubscribed"}},
			"source":          bson.M{"bsonType": "string"},
			"unsubscribed_at": bson.M{"bsonType": "date"},
			"created_at":      bson.M{"bsonType": "date"},
		},
	},
}
