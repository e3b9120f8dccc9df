package utils

import (
	"encoding/json"
	"errors"
	"time"
	"titanium/config"

	"github.com/go-resty/resty/v2"
)

// ErrGatewayUnreachable marks network-level failures talking to Paystack,
// as opposed to a decline or error the gateway itself reported.
var ErrGatewayUnreachable = errors.New("could not reach payment gateway")

// GatewayResponse carries the gateway's reply verbatim so handlers can proxy
// both the body and the status code to the caller.
type GatewayResponse struct {
	StatusCode int
	Body       map[string]interface{}
}

// Ok reports whether the gateway accepted the request
func (r *GatewayResponse) Ok() bool {
	if r.StatusCode != 200 {
		return false
	}
	status, _ := r.Body["status"].(bool)
	return status
}

// AuthorizationData digs the reusable card authorization out of a verify
// response. Returns nil when the response carries none.
func (r *GatewayResponse) AuthorizationData() map[string]interface{} {
	data, _ := r.Body["data"].(map[string]interface{})
	if data == nil {
		return nil
	}
	auth, _ := data["authorization"].(map[string]interface{})
	return auth
}

func paystackClient() *resty.Client {
	return resty.New().
		SetBaseURL(config.AppConfig.PaystackBaseURL).
		SetTimeout(time.Duration(config.AppConfig.PaystackTimeout) * time.Second).
		SetAuthToken(config.AppConfig.PaystackSecretKey)
}

func gatewayResponse(resp *resty.Response) *GatewayResponse {
	body := map[string]interface{}{}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		body = map[string]interface{}{"raw": string(resp.Body())}
	}
	return &GatewayResponse{StatusCode: resp.StatusCode(), Body: body}
}

// InitializeTransaction starts a gateway-hosted checkout for email+amount
func InitializeTransaction(email string, amount int64) (*GatewayResponse, error) {
	resp, err := paystackClient().R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"email":  email,
			"amount": amount,
		}).
		Post("/transaction/initialize")
	if err != nil {
		return nil, ErrGatewayUnreachable
	}
	return gatewayResponse(resp), nil
}

// VerifyTransaction checks a transaction by its reference
func VerifyTransaction(reference string) (*GatewayResponse, error) {
	resp, err := paystackClient().R().
		Get("/transaction/verify/" + reference)
	if err != nil {
		return nil, ErrGatewayUnreachable
	}
	return gatewayResponse(resp), nil
}

// ChargeAuthorization charges a previously stored card authorization
func ChargeAuthorization(email string, amount int64, authorizationCode string) (*GatewayResponse, error) {
	resp, err := paystackClient().R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"email":              email,
			"amount":             amount,
			"authorization_code": authorizationCode,
		}).
		Post("/transaction/charge_authorization")
	if err != nil {
		return nil, ErrGatewayUnreachable
	}
	return gatewayResponse(resp), nil
}
