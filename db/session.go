package db

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	"github.com/quillcms/quill/qn"

	"github.com/go-redis/redis/v8"
	"github.com/rbcervilla/redisstore/v8"
	"github.com/spf13/viper"
	"github.com/ztrue/tracerr"
)

// SessionConfig is connection config for session.
type SessionConfig struct {
	RedisClient *redis.Client // redis client for session
	Prefix      string        // session prefix in redis
}

// NewSession creates the redis-backed session store.
func NewSession(ctx context.Context, conf *SessionConfig) (*redisstore.RedisStore, error) {
	store, err := redisstore.NewRedisStore(ctx, conf.RedisClient)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	store.KeyPrefix(conf.Prefix)
	return store, nil
}

// LoadSessionBytes parses a raw gob session payload from redis.
func LoadSessionBytes(b []byte) (*qn.SessionData, error) {
	values := make(map[any]any)
	dec := gob.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&values); err != nil {
		return nil, tracerr.Wrap(err)
	}
	uid, ok := values["uid"].(int64)
	if !ok {
		return nil, qn.ErrSessionInvalid
	}
	t, ok := values["time"].(int64)
	if !ok {
		return nil, qn.ErrSessionInvalid
	}
	return &qn.SessionData{
		UID:  uid,
		Time: t,
	}, nil
}

func sessionCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(),
		time.Duration(viper.GetInt("session.timeout"))*time.Second)
}

// FindSessions finds all sessions of the uid users, keyed by redis key.
// When uid is nil every session is returned.
func FindSessions(uid []int64) (map[string]*qn.SessionData, error) {
	ctx, cancel := sessionCtx()
	defer cancel()

	keys, err := qn.Quill.Redis.Keys(ctx, viper.GetString("session.prefix")+"*").Result()
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	if len(keys) == 0 {
		return map[string]*qn.SessionData{}, nil
	}

	pipe := qn.Quill.Redis.Pipeline()
	res := make(map[string]*redis.StringCmd, len(keys))
	for _, v := range keys {
		res[v] = pipe.Get(ctx, v)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, tracerr.Wrap(err)
	}

	want := make(map[int64]struct{}, len(uid))
	for _, v := range uid {
		want[v] = struct{}{}
	}
	ret := make(map[string]*qn.SessionData)
	for k, v := range res {
		data, err := LoadSessionBytes([]byte(v.Val()))
		if err != nil {
			continue // foreign or stale entry
		}
		if uid == nil {
			ret[k] = data
			continue
		}
		if _, ok := want[data.UID]; ok {
			ret[k] = data
		}
	}
	return ret, nil
}

// DeleteSessions deletes all sessions of the uid users. When uid is nil
// every session is deleted.
func DeleteSessions(uid []int64) error {
	found, err := FindSessions(uid)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return nil
	}

	ctx, cancel := sessionCtx()
	defer cancel()
	pipe := qn.Quill.Redis.Pipeline()
	for k := range found {
		pipe.Del(ctx, k)
	}
	_, err = pipe.Exec(ctx)
	return tracerr.Wrap(err)
}
