/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package blobstore

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"log"

	"github.com/gregjones/httpcache"
)

const webCachePrefix = "webcache/"

// webCache adapts a Backend to httpcache.Cache so fetched registration pages
// are cached in the same place as tournament data.
type webCache struct {
	ctx     context.Context
	backend Backend
}

// AsHTTPCache returns an httpcache.Cache storing responses in b under
// "webcache/".
func AsHTTPCache(ctx context.Context, b Backend) httpcache.Cache {
	return &webCache{ctx: ctx, backend: b}
}

func (c *webCache) Get(key string) ([]byte, bool) {
	data, err := c.backend.Get(c.ctx, cacheKeyToBlobKey(key))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("blobstore.webcache.get: %v", err)
		}
		return nil, false
	}

	return data, true
}

func (c *webCache) Set(key string, data []byte) {
	if err := c.backend.Put(c.ctx, cacheKeyToBlobKey(key), data); err != nil {
		log.Printf("blobstore.webcache.set: %v", err)
	}
}

func (c *webCache) Delete(key string) {
	if err := c.backend.Delete(c.ctx, cacheKeyToBlobKey(key)); err != nil {
		log.Printf("blobstore.webcache.delete: %v", err)
	}
}

func cacheKeyToBlobKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)

	return webCachePrefix + hex.EncodeToString(h.Sum(nil))
}
