package secretaria

import (
	"context"
	"sisregip-service/internal/app/contracts"
	"sisregip-service/internal/app/models"
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type secretaryMongoRepository struct {
	Collection *mongo.Collection
}

func NewSecretaryMongoRepository(db *mongo.Client, dbName string) contracts.SecretaryRepository {
	return &secretaryMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSecretariaProtocols),
	}
}

func (repo *secretaryMongoRepository) FindAll(ctx context.Context) ([]models.SecretaryRecord, error) {
	records := make([]models.SecretaryRecord, 0)
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := repo.Collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	err = cursor.All(ctx, &records)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return records, nil
}
