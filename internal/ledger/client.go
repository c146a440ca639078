// Package ledger is the typed remote-call boundary to the external ledger
// service. It shapes requests, parses and validates responses into the strict
// model types, and nothing more: every business decision stays either on the
// server or in the pure core packages.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"bank-dashboard/internal/models"
	"bank-dashboard/internal/utils"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *fasthttp.Client
	timeout time.Duration
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		timeout: timeout,
	}
}

// do runs one round trip. A transport failure comes back wrapped in
// ErrUnavailable; any 4xx/5xx comes back as *RemoteError with the server's
// message. Exactly one attempt: retrying is the user's gesture, not ours.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	requestID := uuid.NewString()

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	req.Header.Set("X-Request-ID", requestID)

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		req.SetBody(payload)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	utils.LogLedger(method+" "+path, "request "+requestID)
	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		utils.LogError("LedgerClient", method+" "+path+" failed", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	status := resp.StatusCode()
	if status >= 400 {
		remote := &RemoteError{Status: status, RequestID: requestID}
		var payload struct {
			Error  string `json:"error"`
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(resp.Body(), &payload); err == nil {
			remote.Message = payload.Error
			if remote.Message == "" {
				remote.Message = payload.Detail
			}
		}
		utils.LogWarning("LedgerClient", "%s %s rejected: %d %s", method, path, status, remote.Message)
		return remote
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: %v", models.ErrMalformedPayload, err)
	}
	return nil
}

// listPayload unwraps the optional pagination envelope some list endpoints
// use: either a bare JSON array or {"results": [...]}.
func listPayload(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return trimmed
	}
	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err == nil && envelope.Results != nil {
		return envelope.Results
	}
	return trimmed
}

func (c *Client) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var raw json.RawMessage
	if err := c.do(ctx, fasthttp.MethodGet, "/accounts/", nil, &raw); err != nil {
		return nil, err
	}

	var accounts []models.Account
	if err := json.Unmarshal(listPayload(raw), &accounts); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedPayload, err)
	}
	for i := range accounts {
		if err := accounts[i].Validate(); err != nil {
			return nil, err
		}
	}
	return accounts, nil
}

func (c *Client) GetAccount(ctx context.Context, accountNumber string) (*models.Account, error) {
	var account models.Account
	path := "/accounts/" + url.PathEscape(accountNumber) + "/"
	if err := c.do(ctx, fasthttp.MethodGet, path, nil, &account); err != nil {
		return nil, err
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) CreateAccount(ctx context.Context, holderName string, initialBalance decimal.Decimal) (*models.Account, error) {
	req := models.CreateAccountRequest{
		HolderName:     holderName,
		InitialBalance: initialBalance,
	}
	var account models.Account
	if err := c.do(ctx, fasthttp.MethodPost, "/accounts/", req, &account); err != nil {
		return nil, err
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}
	return &account, nil
}

// accountEnvelope matches the {"message": ..., "account": {...}} shape the
// ledger wraps around mutation responses.
type accountEnvelope struct {
	Message string         `json:"message"`
	Account models.Account `json:"account"`
}

func (c *Client) mutateAccount(ctx context.Context, path string, body interface{}) (*models.Account, error) {
	var envelope accountEnvelope
	if err := c.do(ctx, fasthttp.MethodPost, path, body, &envelope); err != nil {
		return nil, err
	}
	if err := envelope.Account.Validate(); err != nil {
		return nil, err
	}
	return &envelope.Account, nil
}

func (c *Client) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (*models.Account, error) {
	path := "/accounts/" + url.PathEscape(accountNumber) + "/deposit/"
	return c.mutateAccount(ctx, path, models.MutationRequest{Amount: amount, Description: description})
}

func (c *Client) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (*models.Account, error) {
	path := "/accounts/" + url.PathEscape(accountNumber) + "/withdraw/"
	return c.mutateAccount(ctx, path, models.MutationRequest{Amount: amount, Description: description})
}

func (c *Client) Close(ctx context.Context, accountNumber string) (*models.Account, error) {
	path := "/accounts/" + url.PathEscape(accountNumber) + "/close/"
	return c.mutateAccount(ctx, path, nil)
}

func (c *Client) AccountTransactions(ctx context.Context, accountNumber string) ([]models.Transaction, error) {
	path := "/accounts/" + url.PathEscape(accountNumber) + "/transactions/"
	return c.fetchTransactions(ctx, path)
}

// Transactions returns the global feed, optionally narrowed to one account.
// The feed arrives unordered; callers sort by timestamp as needed.
func (c *Client) Transactions(ctx context.Context, accountNumber string) ([]models.Transaction, error) {
	path := "/transactions/"
	if accountNumber != "" {
		path += "?account=" + url.QueryEscape(accountNumber)
	}
	return c.fetchTransactions(ctx, path)
}

func (c *Client) fetchTransactions(ctx context.Context, path string) ([]models.Transaction, error) {
	var raw json.RawMessage
	if err := c.do(ctx, fasthttp.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	if err := json.Unmarshal(listPayload(raw), &transactions); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedPayload, err)
	}
	for i := range transactions {
		if err := transactions[i].Validate(); err != nil {
			return nil, err
		}
	}
	return transactions, nil
}

func (c *Client) Transfer(ctx context.Context, fromAccount, toAccount string, amount decimal.Decimal) (*models.TransferResult, error) {
	req := models.TransferRequest{
		FromAccount: fromAccount,
		ToAccount:   toAccount,
		Amount:      amount,
	}
	var envelope struct {
		Message     string         `json:"message"`
		FromAccount models.Account `json:"from_account"`
		ToAccount   models.Account `json:"to_account"`
	}
	if err := c.do(ctx, fasthttp.MethodPost, "/transfer/", req, &envelope); err != nil {
		return nil, err
	}
	if err := envelope.FromAccount.Validate(); err != nil {
		return nil, err
	}
	if err := envelope.ToAccount.Validate(); err != nil {
		return nil, err
	}
	return &models.TransferResult{
		FromAccount: envelope.FromAccount,
		ToAccount:   envelope.ToAccount,
	}, nil
}

func (c *Client) Summary(ctx context.Context) (*models.BankSummary, error) {
	var summary models.BankSummary
	if err := c.do(ctx, fasthttp.MethodGet, "/summary/", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Ping checks reachability for the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Summary(ctx)
	return err
}
