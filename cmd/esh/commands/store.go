// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"fmt"

	"github.com/katalvlaran/esh/config"
	"github.com/katalvlaran/esh/modelstore"
)

// openStore builds the configured model store. The returned close function
// is never nil.
func (a *app) openStore(ctx context.Context) (modelstore.Store, func() error, error) {
	noop := func() error { return nil }
	st := a.cfg.Store
	switch st.Kind {
	case config.StoreLocal:
		return modelstore.NewLocalStore(st.Dir), noop, nil
	case config.StoreBadger:
		s, err := modelstore.OpenBadgerStore(modelstore.BadgerOptions{Dir: st.Dir, Logger: a.logger})
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case config.StoreS3:
		client, err := modelstore.NewS3Client(ctx, st.Region, st.Endpoint)
		if err != nil {
			return nil, noop, err
		}
		return modelstore.NewS3Store(client, st.Bucket, st.Prefix), noop, nil
	case config.StoreMinio:
		client, err := modelstore.NewMinioClient(st.Endpoint, st.AccessKey, st.SecretKey, st.Secure)
		if err != nil {
			return nil, noop, err
		}
		return modelstore.NewMinioStore(client, st.Bucket, st.Prefix), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown store kind %q", st.Kind)
	}
}
