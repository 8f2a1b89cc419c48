package handlers

import (
	"bytes"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testUserHex = "507f1f77bcf86cd799439011"

func jsonBody(payload []byte) io.Reader {
	return bytes.NewReader(payload)
}

func mustObjectID(hex string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		panic(err)
	}
	return id
}
