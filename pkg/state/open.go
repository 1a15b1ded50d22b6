package state

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	errs "github.com/matzehuels/cartesian/pkg/errors"
)

// Open creates a store from a URL:
//
//	none | ""                      NullStore
//	memory                         MemoryStore
//	file:///path/to/dir            FileStore (file:// alone uses the default dir)
//	redis://[:password@]host/db    RedisStore
//	mongodb://host/database        MongoStore
func Open(ctx context.Context, rawURL string) (Store, error) {
	switch rawURL {
	case "", "none":
		return NewNullStore(), nil
	case "memory":
		return NewMemoryStore(), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse state url")
	}
	switch u.Scheme {
	case "file":
		s, err := NewFileStore(u.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "redis":
		cfg := RedisConfig{Addr: u.Host}
		if p, ok := u.User.Password(); ok {
			cfg.Password = p
		}
		if db := strings.Trim(u.Path, "/"); db != "" {
			if cfg.DB, err = strconv.Atoi(db); err != nil {
				return nil, errs.New(errs.ErrCodeInvalidConfig, "invalid redis db %q", db)
			}
		}
		s, err := NewRedisStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "mongodb", "mongodb+srv":
		cfg := MongoConfig{Database: strings.Trim(u.Path, "/")}
		u.Path = ""
		cfg.URI = u.String()
		s, err := NewMongoStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, errs.New(errs.ErrCodeUnsupported, "unsupported state backend %q", u.Scheme)
}
