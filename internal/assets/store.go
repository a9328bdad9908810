package assets

import (
	"context"
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"foliogen/internal/config"
	"foliogen/internal/types"
)

// Store reads previously uploaded project images from S3-compatible storage
// and turns them into stable public URLs for the catalog. Read-only: the
// resolver never uploads.
type Store struct {
	client    *minio.Client
	bucket    string
	publicURL string

	// Listing results are read-mostly; a small LRU keeps repeated requests
	// for the same project from hitting storage every time.
	cache *lru.Cache[string, []types.ProjectImage]
}

func NewStore(cfg config.AssetConfig) (*Store, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("assets: endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("assets: access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("assets: bucket is required")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("assets: init s3 client: %w", err)
	}

	cache, err := lru.New[string, []types.ProjectImage](256)
	if err != nil {
		return nil, err
	}

	public := strings.TrimRight(cfg.PublicURL, "/")
	if public == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		public = fmt.Sprintf("%s://%s/%s", scheme, endpoint, bucket)
	}

	return &Store{
		client:    client,
		bucket:    bucket,
		publicURL: public,
		cache:     cache,
	}, nil
}

// URLFor returns the stable public URL of one stored object.
func (s *Store) URLFor(key string) string {
	return s.publicURL + "/" + strings.TrimLeft(key, "/")
}

// ProjectImages lists a project's stored images of the given kind
// ("final" or "process"), ordered by object name.
func (s *Store) ProjectImages(ctx context.Context, projectID, kind string) ([]types.ProjectImage, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, fmt.Errorf("assets: project id is required")
	}
	cacheKey := projectID + "/" + kind
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached, nil
	}

	prefix := fmt.Sprintf("projects/%s/%s/", projectID, kind)
	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("assets: list %s: %w", prefix, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)

	images := make([]types.ProjectImage, 0, len(keys))
	for i, key := range keys {
		images = append(images, types.ProjectImage{URL: s.URLFor(key), Index: i + 1})
	}
	s.cache.Add(cacheKey, images)
	return images, nil
}

// HydrateProjects fills empty image lists from storage so callers may send
// either explicit URLs or just project ids. Caller data wins when present.
func (s *Store) HydrateProjects(ctx context.Context, projects []types.Project) ([]types.Project, error) {
	out := make([]types.Project, len(projects))
	copy(out, projects)
	for i := range out {
		if out[i].ID == "" {
			continue
		}
		if len(out[i].FinalImages) == 0 {
			imgs, err := s.ProjectImages(ctx, out[i].ID, "final")
			if err != nil {
				return nil, err
			}
			out[i].FinalImages = imgs
		}
		if len(out[i].ProcessImages) == 0 {
			imgs, err := s.ProjectImages(ctx, out[i].ID, "process")
			if err != nil {
				return nil, err
			}
			out[i].ProcessImages = imgs
		}
	}
	return out, nil
}
