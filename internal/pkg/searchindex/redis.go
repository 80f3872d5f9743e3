// Package searchindex keeps a secondary text index in Redis in sync with
// the relational store. Writes upsert a JSON document per row; deletes
// remove it. The index is best-effort: callers log failures and move on,
// accepting a stale index over a failed request.
package searchindex

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/opencampus/coursehub/internal/app/models"
)

// Config holds connection settings for the index.
type Config struct {
	URL        string
	Password   string
	DB         int
	MaxRetries int
	PoolSize   int
}

// Client handles index operations against Redis.
type Client struct {
	client *redis.Client
}

// NewClient creates a new search index client and verifies connectivity.
func NewClient(config Config) (*Client, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	if config.Password != "" {
		opts.Password = config.Password
	}
	if config.DB >= 0 {
		opts.DB = config.DB
	}
	if config.MaxRetries > 0 {
		opts.MaxRetries = config.MaxRetries
	}
	if config.PoolSize > 0 {
		opts.PoolSize = config.PoolSize
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{client: client}, nil
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.client.Close()
}

func programKey(id int64) string    { return fmt.Sprintf("search:program:%d", id) }
func courseKey(id int64) string     { return fmt.Sprintf("search:course:%d", id) }
func enrollmentKey(id int64) string { return fmt.Sprintf("search:enrollment:%d", id) }

func (c *Client) set(ctx context.Context, key string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal index document: %w", err)
	}
	return c.client.Set(ctx, key, data, 0).Err()
}

// IndexProgram upserts the index document for a program.
func (c *Client) IndexProgram(ctx context.Context, program *models.Program) error {
	return c.set(ctx, programKey(program.ID), program)
}

// DeleteProgram removes a program from the index.
func (c *Client) DeleteProgram(ctx context.Context, id int64) error {
	return c.client.Del(ctx, programKey(id)).Err()
}

// IndexCourse upserts the index document for a course.
func (c *Client) IndexCourse(ctx context.Context, course *models.Course) error {
	return c.set(ctx, courseKey(course.ID), course)
}

// DeleteCourse removes a course from the index.
func (c *Client) DeleteCourse(ctx context.Context, id int64) error {
	return c.client.Del(ctx, courseKey(id)).Err()
}

// IndexEnrollment upserts the index document for an enrollment.
func (c *Client) IndexEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	return c.set(ctx, enrollmentKey(enrollment.ID), enrollment)
}

// DeleteEnrollment removes an enrollment from the index.
func (c *Client) DeleteEnrollment(ctx context.Context, id int64) error {
	return c.client.Del(ctx, enrollmentKey(id)).Err()
}
