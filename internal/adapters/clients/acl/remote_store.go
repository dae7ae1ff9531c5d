package acl

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/nishantarora/portfolio/internal/adapters/clients"
	"github.com/nishantarora/portfolio/internal/domain"
	"github.com/nishantarora/portfolio/internal/ports"
)

// maxContentBytes caps a single content body read from the remote host.
const maxContentBytes = 8 << 20

// RemoteStore reads metadata and content bodies from a static host, such
// as the deployed site itself or a raw repository URL.
type RemoteStore struct {
	BaseAdapter
	layout ports.ContentLayout
}

// NewRemoteStore creates a RemoteStore over client.
func NewRemoteStore(client *clients.Client, layout ports.ContentLayout) *RemoteStore {
	return &RemoteStore{
		BaseAdapter: NewBaseAdapter(client, "remote-content"),
		layout:      layout,
	}
}

// Records implements ports.MetadataSource.
func (s *RemoteStore) Records(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	p := s.layout.MetadataPath(kind)

	body, err := s.Get(ctx, escapePath(p), p)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	records, err := DecodeRecords(body, kind)
	if err != nil {
		return nil, domain.WrapFetchError(p, err)
	}

	return records, nil
}

// Content implements ports.ContentSource.
func (s *RemoteStore) Content(ctx context.Context, rec *domain.Record) (string, error) {
	p := s.layout.ContentPath(rec)

	body, err := s.Get(ctx, escapePath(p), p)
	if err != nil {
		return "", err
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(io.LimitReader(body, maxContentBytes))
	if err != nil {
		return "", domain.WrapFetchError(p, fmt.Errorf("reading body: %w", err))
	}

	return string(data), nil
}

// Name implements ports.HealthChecker.
func (s *RemoteStore) Name() string {
	return s.ServiceName()
}

// Check implements ports.HealthChecker. The host is healthy when the
// posts metadata list can be fetched and decoded.
func (s *RemoteStore) Check(ctx context.Context) error {
	_, err := s.Records(ctx, domain.KindPost)
	return err
}

func escapePath(p string) string {
	return (&url.URL{Path: "/" + p}).EscapedPath()
}
