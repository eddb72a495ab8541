// Package drive lists and downloads PDF files from a Google Drive folder.
package drive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"pdfchat/internal/contextutil"
	"pdfchat/internal/domain"
	"pdfchat/internal/indexer"
)

const (
	pdfMimeType  = "application/pdf"
	listPageSize = 1000
	listFields   = "nextPageToken, files(id, name, modifiedTime)"
)

// Provider builds Drive clients for sync runs.
type Provider struct {
	creds *Credentials
	opts  []option.ClientOption
}

// NewProvider creates a Provider. creds may be nil, in which case every call
// to Source fails with domain.ErrAuth. opts are appended to the client options.
func NewProvider(creds *Credentials, opts ...option.ClientOption) *Provider {
	return &Provider{creds: creds, opts: opts}
}

// Source returns an authenticated Drive client.
func (p *Provider) Source(ctx context.Context) (indexer.Source, error) {
	if p.creds == nil {
		return nil, fmt.Errorf("%w: Google service account credentials not provided; add service-account.json or set GOOGLE_CLIENT_EMAIL and GOOGLE_PRIVATE_KEY", domain.ErrAuth)
	}

	opts := append([]option.ClientOption{option.WithTokenSource(p.creds.TokenSource(ctx))}, p.opts...)
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Drive client: %v", domain.ErrAuth, err)
	}
	return NewClient(svc), nil
}

// Client implements indexer.Source on top of the Drive v3 API.
type Client struct {
	svc *drive.Service
}

// NewClient wraps an existing Drive service.
func NewClient(svc *drive.Service) *Client {
	return &Client{svc: svc}
}

// ListDocuments returns every non-trashed PDF whose parent is folderID, following all pages.
func (c *Client) ListDocuments(ctx context.Context, folderID string) ([]domain.Document, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var docs []domain.Document
	err := c.svc.Files.List().
		Q(folderQuery(folderID)).
		Fields(listFields).
		PageSize(listPageSize).
		Pages(ctx, func(page *drive.FileList) error {
			for _, f := range page.Files {
				docs = append(docs, domain.Document{
					ID:           f.Id,
					Name:         f.Name,
					ModifiedTime: parseModifiedTime(f.ModifiedTime),
				})
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("%w: list folder %s: %v", domain.ErrFetch, folderID, err)
	}

	logger.DebugContext(ctx, "listed drive folder", "folder_id", folderID, "files", len(docs))
	return docs, nil
}

// Fetch downloads the content of the file with the given id.
func (c *Client) Fetch(ctx context.Context, documentID string) (io.ReadCloser, error) {
	resp, err := c.svc.Files.Get(documentID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("%w: download %s: %v", domain.ErrFetch, documentID, err)
	}
	return resp.Body, nil
}

// folderQuery builds the Drive search expression for PDFs directly inside folderID.
func folderQuery(folderID string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(folderID)
	return fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false", escaped, pdfMimeType)
}

func parseModifiedTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
