package samgov

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL    = "https://api.sam.gov/opportunities/v2/search"
	userAgent = "theworkedge/contract-scout (scout@theworkedge.ai)"
	// SAM.gov rejects anything above this value for the limit parameter.
	maxLimit = 1000
)

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	apiKey     string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(ctx context.Context, logger *zap.Logger, apiKey string) *Client {
	return &Client{
		ctx:    ctx,
		apiKey: apiKey,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

func (c *Client) Search(params *SearchParams) (*Opportunities, error) {
	return c.search(params)
}
