package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

// MarketClient drives a running market daemon over its HTTP API. Admin
// identity is the account name; the daemon resolves it to a capability.
type MarketClient struct {
	baseUrl string
	client  *retryablehttp.Client
}

func NewMarketClient(baseUrl string) *MarketClient {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 3

	return &MarketClient{baseUrl: baseUrl, client: client}
}

type FeePolicy struct {
	Receiver   string `json:"receiver"`
	Percentage string `json:"percentage"`
}

func (c *MarketClient) GetFee() (FeePolicy, error) {
	resp, err := c.client.Get(fmt.Sprintf("%s/fee", c.baseUrl))
	if err != nil {
		return FeePolicy{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FeePolicy{}, fmt.Errorf("get fee: %s", resp.Status)
	}

	var policy FeePolicy
	err = json.NewDecoder(resp.Body).Decode(&policy)

	return policy, err
}

func (c *MarketClient) SetFee(admin, receiver, percentage string) error {
	body := map[string]string{"admin": admin, "receiver": receiver, "percentage": percentage}

	return c.send(http.MethodPut, "/fee", body, http.StatusOK)
}

func (c *MarketClient) AddSupportedKind(admin, kind string) error {
	body := map[string]string{"admin": admin, "assetKind": kind}

	return c.send(http.MethodPost, "/supported-kinds", body, http.StatusCreated)
}

func (c *MarketClient) CreateAdmin(admin, newAdmin string) error {
	body := map[string]string{"admin": admin, "newAdmin": newAdmin}

	return c.send(http.MethodPost, "/admins", body, http.StatusCreated)
}

func (c *MarketClient) TransferAdmin(admin, newAdmin string) error {
	body := map[string]string{"admin": admin, "newAdmin": newAdmin}

	return c.send(http.MethodPut, "/admins/transfer", body, http.StatusOK)
}

func (c *MarketClient) send(method, path string, body interface{}, expected int) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequest(method, c.baseUrl+path, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != expected {
		return errors.New(resp.Status)
	}

	return nil
}
