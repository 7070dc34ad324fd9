package mongo

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type ConnectionInfo struct {
	Scheme     string
	User       string
	Password   string
	Host       string
	Port       string
	DB         string
	AuthSource string
}

// URI builds the connection string. mongodb+srv URIs carry no port.
func (i ConnectionInfo) URI() string {
	scheme := i.Scheme
	if scheme == "" {
		scheme = "mongodb"
	}

	auth := ""
	if i.User != "" {
		auth = url.QueryEscape(i.User)
		if i.Password != "" {
			auth += ":" + url.QueryEscape(i.Password)
		}
		auth += "@"
	}

	host := i.Host
	if i.Port != "" && scheme != "mongodb+srv" {
		host += ":" + i.Port
	}

	query := ""
	if i.AuthSource != "" {
		query = "?authSource=" + i.AuthSource
	}

	return fmt.Sprintf("%s://%s%s/%s%s", scheme, auth, host, i.DB, query)
}

// Mongo holds the run-journal database.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewConnection(ctx context.Context, info ConnectionInfo) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(info.URI()))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Mongo{Client: client, Database: client.Database(info.DB)}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	if m != nil && m.Client != nil {
		return m.Client.Disconnect(ctx)
	}
	return nil
}
