package zenskar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/zprov/internal/domain"
	"github.com/bnema/zprov/internal/ports"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "https://api.zenskar.com"
	DefaultTimeout = 30 * time.Second

	maxResponseBytes = 1 << 20

	opCreateCustomer = "create customer"
	opCreateProduct  = "create product"
	opAddPricing     = "add pricing"
	opCreateContract = "create contract"
)

var (
	errMissingID     = errors.New("response has no id")
	errEmptyResponse = errors.New("response is empty")
)

type Config struct {
	BaseURL     string
	Credentials domain.Credentials
	Timeout     time.Duration
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

type Client struct {
	baseURL     string
	credentials domain.Credentials
	httpClient  *http.Client
	logger      zerolog.Logger
}

var _ ports.BillingAPI = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Credentials.Validate(); err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:     baseURL,
		credentials: cfg.Credentials,
		httpClient:  httpClient,
		logger:      cfg.Logger,
	}, nil
}

func (c *Client) CreateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	id, err := c.create(ctx, opCreateCustomer, "/customers", newCustomerPayload(customer))
	if err != nil {
		c.logger.Error().Err(err).Msg("error creating customer")
		return domain.Customer{}, err
	}

	customer.ID = id
	return customer, nil
}

func (c *Client) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	id, err := c.create(ctx, opCreateProduct, "/products", newProductPayload(product))
	if err != nil {
		c.logFailure(err, "error creating product", "product", product.Name)
		return domain.Product{}, err
	}

	product.ID = id
	product.Active = true
	return product, nil
}

func (c *Client) AddPricing(ctx context.Context, pricing domain.Pricing) (domain.Pricing, error) {
	if strings.TrimSpace(pricing.ProductID) == "" {
		return domain.Pricing{}, &domain.RemoteRequestError{Op: opAddPricing, Err: errors.New("product id is empty")}
	}

	path := "/products/" + url.PathEscape(pricing.ProductID) + "/pricing"
	id, err := c.create(ctx, opAddPricing, path, newPricingPayload(pricing))
	if err != nil {
		c.logFailure(err, "error adding pricing to product", "pricing", pricing.Name)
		return domain.Pricing{}, err
	}

	pricing.ID = id
	return pricing, nil
}

func (c *Client) CreateContract(ctx context.Context, contract domain.Contract) (domain.Contract, error) {
	var fields map[string]json.RawMessage
	status, err := c.post(ctx, opCreateContract, "/contract_v2", newContractPayload(contract), &fields)
	if err == nil && len(fields) == 0 {
		err = &domain.RemoteRequestError{Op: opCreateContract, StatusCode: status, Err: errEmptyResponse}
	}
	if err != nil {
		c.logFailure(err, "error creating contract", "contract", contract.Terms.Name)
		return domain.Contract{}, err
	}

	// The contract id is optional in the response.
	if raw, ok := fields["id"]; ok {
		var id resourceID
		if json.Unmarshal(raw, &id) == nil {
			contract.ID = string(id)
		}
	}

	return contract, nil
}

// create posts payload and returns the id of the created resource.
func (c *Client) create(ctx context.Context, op, path string, payload any) (string, error) {
	var created createdResource
	status, err := c.post(ctx, op, path, payload, &created)
	if err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", &domain.RemoteRequestError{Op: op, StatusCode: status, Err: errMissingID}
	}

	return string(created.ID), nil
}

// post sends payload and decodes a 2xx response into out. It returns the response status code.
func (c *Client) post(ctx context.Context, op, path string, payload any, out any) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, &domain.RemoteRequestError{Op: op, Err: fmt.Errorf("encode payload: %w", err)}
	}

	endpoint := c.baseURL + path
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, &domain.RemoteRequestError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	request.Header.Set("accept", "application/json")
	request.Header.Set("content-type", "application/json")
	request.Header.Set("x-api-key", c.credentials.APIKey)
	request.Header.Set("organisation", c.credentials.OrganisationID)

	c.logger.Debug().Str("op", op).Str("url", endpoint).Msg("sending request")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return 0, &domain.RemoteRequestError{Op: op, Err: fmt.Errorf("perform request: %w", err)}
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return response.StatusCode, &domain.RemoteRequestError{Op: op, StatusCode: response.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return response.StatusCode, &domain.RemoteRequestError{Op: op, StatusCode: response.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return response.StatusCode, &domain.RemoteRequestError{
			Op:         op,
			StatusCode: response.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}

	return response.StatusCode, nil
}

// logFailure logs err along with the raw response body when the server sent one.
func (c *Client) logFailure(err error, msg, key, value string) {
	event := c.logger.Error().Err(err).Str(key, value)

	var remote *domain.RemoteRequestError
	if errors.As(err, &remote) {
		event = event.Str("response", remote.Body)
	}

	event.Msg(msg)
}
