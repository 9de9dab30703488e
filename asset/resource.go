package asset

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Settings for fetching s3:// resources. An empty Endpoint selects the
// default AWS endpoint for Region.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// The s3 settings used by NewResource. It is populated once at startup.
var S3 S3Config

// The Resource class wraps a streamable file or remote Resource.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Return the remote path to this resource. If this is a remote resource then
// this method returns the base path (without leading /) of the remote URL.
// Otherwise, this method returns the same value as Path().
func (r *Resource) RemotePath() string {
	if r.IsRemote() {
		return filepath.Base(r.url.Path)
	}
	return r.Path()
}

// Returns true if the Resource is streamed over http/https or s3.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Resolve pathToResource the same way NewResource does, without opening it.
// The result is used as the cache key for shared assets.
func ResolvePath(pathToResource string, relTo *Resource) (string, error) {
	url, err := resolveURL(pathToResource, relTo)
	if err != nil {
		return "", err
	}
	if url.Scheme == "" {
		return filepath.Clean(url.Path), nil
	}
	return url.String(), nil
}

// Create a new Resource data stream. If relTo is specified and pathToResource
// does not define a scheme, then the path to the new Resource will be generated
// by concatenating the base path of relTo and pathToResource.
//
// This function can handle http/https URLs by delegating to the net/http
// package and s3://bucket/key URLs by delegating to the aws sdk. The caller
// must make sure to close the returned io.ReadCloser to prevent mem leaks.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	url, err := resolveURL(pathToResource, relTo)
	if err != nil {
		return nil, err
	}

	var reader io.ReadCloser
	switch url.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(url.Path))
		if err != nil {
			return nil, err
		}
	case "http", "https":
		resp, err := http.Get(url.String())
		if err != nil {
			return nil, fmt.Errorf("resource: could not fetch '%s': %s", url.String(), err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("resource: could not fetch '%s': status %d", url.String(), resp.StatusCode)
		}
		reader = resp.Body
	case "s3":
		reader, err = openS3Object(url.Host, strings.TrimPrefix(url.Path, "/"))
		if err != nil {
			return nil, fmt.Errorf("resource: could not fetch '%s': %s", url.String(), err)
		}
	default:
		return nil, fmt.Errorf("resource: unsupported scheme '%s'", url.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        url,
	}, nil
}

// Create a resource from a reader.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	url, _ := url.Parse(name)
	return &Resource{
		ReadCloser: io.NopCloser(source),
		url:        url,
	}
}

func resolveURL(pathToResource string, relTo *Resource) (*url.URL, error) {
	// Replace forward slashes with backslaces and try parsing as a URL
	url, err := url.Parse(strings.Replace(pathToResource, `\`, `/`, -1))
	if err != nil {
		return nil, err
	}

	// If this is a relative url, clone parent url and adjust its path
	if url.Scheme == "" && relTo != nil && !filepath.IsAbs(url.Path) {
		path := url.Path
		url, _ = url.Parse(relTo.url.String())
		prefix := url.Path
		if url.Scheme == "" {
			prefix, err = filepath.Abs(relTo.url.String())
			if err != nil {
				return nil, fmt.Errorf("resource: could not detect abs path for %s; %s", relTo.url.String(), err.Error())
			}
		}
		url.Path = filepath.Dir(prefix) + "/" + path
	}

	return url, nil
}

func openS3Object(bucket, key string) (io.ReadCloser, error) {
	cfg := &aws.Config{
		Region: aws.String(S3.Region),
	}
	if S3.Region == "" {
		cfg.Region = aws.String("us-east-1")
	}
	if S3.Endpoint != "" {
		cfg.Endpoint = aws.String(S3.Endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	if S3.AccessKey != "" {
		cfg.Credentials = credentials.NewStaticCredentials(S3.AccessKey, S3.SecretKey, "")
	} else {
		cfg.Credentials = credentials.AnonymousCredentials
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}

	out, err := s3.New(sess).GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}
