package api

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	versionManifestEndpoint = `https://piston-meta.mojang.com/mc/game/version_manifest_v2.json`
	resourcesEndpoint       = `https://resources.download.minecraft.net/`

	userAgent = "mcsetup"
)

type ManifestClient interface {
	DownloadVersionManifest(ctx context.Context) (*VersionManifest, error)
}

type DownloadClient interface {
	// DownloadFile opens the body of url. The caller must close it.
	DownloadFile(ctx context.Context, url string) (io.ReadCloser, error)
	// AssetURL returns where the asset object with the given hash is served.
	AssetURL(hash string) string
}

type Client interface {
	ManifestClient
	DownloadClient
}

type client struct {
	httpClient  *http.Client
	manifestURL string
	resourceURL string
}

type ClientOption func(*client)

func WithManifestURL(url string) ClientOption {
	return func(c *client) {
		c.manifestURL = url
	}
}

func WithResourcesURL(url string) ClientOption {
	return func(c *client) {
		c.resourceURL = strings.TrimSuffix(url, "/") + "/"
	}
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *client) {
		c.httpClient = hc
	}
}

func NewClient(opts ...ClientOption) Client {
	c := &client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{},
			},
		},
		manifestURL: versionManifestEndpoint,
		resourceURL: resourcesEndpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status: %s", url, resp.Status)
	}
	return resp, nil
}

func (c *client) DownloadVersionManifest(ctx context.Context) (*VersionManifest, error) {
	resp, err := c.get(ctx, c.manifestURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var manifest VersionManifest
	if err := json.NewDecoder(resp.Body).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("failed to parse version manifest: %w", err)
	}
	return &manifest, nil
}

func (c *client) DownloadFile(ctx context.Context, url string) (io.ReadCloser, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	return resp.Body, nil
}

func (c *client) AssetURL(hash string) string {
	if len(hash) < 2 {
		return c.resourceURL + hash
	}
	return c.resourceURL + hash[:2] + "/" + hash
}
