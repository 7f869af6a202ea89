package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/solrkit/internal/cache"
)

func TestGet_Hit(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "sk:books:1f")).
		Return(mock.Result(mock.RedisString(`{"response":{}}`)))

	s := newStore(c, "sk:")
	got, err := s.Get(context.Background(), "books:1f")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"response":{}}` {
		t.Errorf("Get = %q", got)
	}
}

func TestGet_Miss(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "k")).
		Return(mock.Result(mock.RedisNil()))

	s := newStore(c, "")
	if _, err := s.Get(context.Background(), "k"); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("Get error = %v, want cache.ErrMiss", err)
	}
}

func TestGet_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "k")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := newStore(c, "")
	_, err := s.Get(context.Background(), "k")
	var re *Error
	if !errors.As(err, &re) || re.Op != OpGet {
		t.Fatalf("Get error = %v, want *Error{Op: GET}", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Get error = %v, want wrapped DeadlineExceeded", err)
	}
}

func TestSet_WithTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "sk:k", "body", "EX", "60")).
		Return(mock.Result(mock.RedisString("OK")))

	s := newStore(c, "sk:")
	if err := s.Set(context.Background(), "k", []byte("body"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
}

func TestSet_NoTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "k", "body")).
		Return(mock.ErrorResult(errors.New("READONLY")))

	s := newStore(c, "")
	var re *Error
	if err := s.Set(context.Background(), "k", []byte("body"), 0); !errors.As(err, &re) || re.Op != OpSet {
		t.Errorf("Set error = %v, want *Error{Op: SET}", err)
	}
}

func TestPing(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	if err := newStore(c, "").Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
