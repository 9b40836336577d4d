// Package ldb talks to the National Rail live departure board web service
// and attaches its boards to station entities.
package ldb

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/url"

	"github.com/samber/oops"

	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
)

const (
	soapNamespace  = "http://schemas.xmlsoap.org/soap/envelope/"
	tokenNamespace = "http://thalesgroup.com/RTTI/2013-11-28/Token/types"
	ldbNamespace   = "http://thalesgroup.com/RTTI/2017-10-01/ldb/"
	actionPrefix   = "http://thalesgroup.com/RTTI/2012-01-13/ldb/"

	maxResponseSize = 4 << 20
)

type envelope struct {
	XMLName xml.Name `xml:"soap:Envelope"`
	Soap    string   `xml:"xmlns:soap,attr"`
	Typ     string   `xml:"xmlns:typ,attr"`
	LDB     string   `xml:"xmlns:ldb,attr"`
	Token   string   `xml:"soap:Header>typ:AccessToken>typ:TokenValue"`
	Body    struct {
		Request any
	} `xml:"soap:Body"`
}

type boardRequest struct {
	XMLName xml.Name
	NumRows int    `xml:"ldb:numRows"`
	CRS     string `xml:"ldb:crs"`
}

type serviceDetailsRequest struct {
	XMLName   xml.Name `xml:"ldb:GetServiceDetailsRequest"`
	ServiceID string   `xml:"ldb:serviceID"`
}

// Client issues SOAP 1.1 calls against an OpenLDBWS endpoint.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

// NewClient validates the endpoint and token up front so a misconfigured
// deployment fails before any request is made.
func NewClient(endpoint, token string, httpClient *http.Client) (*Client, error) {
	if token == "" {
		return nil, oops.With("endpoint", endpoint).Wrap(portalErrors.ErrMissingLDBToken)
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, oops.With("endpoint", endpoint, "context", "invalid endpoint").Wrap(err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, oops.With("endpoint", endpoint).Errorf("endpoint must be an absolute http(s) URL")
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     httpClient,
	}, nil
}

// DepartureBoard returns up to numRows departures from the station.
func (c *Client) DepartureBoard(ctx context.Context, numRows int, crs string) (*Object, error) {
	return c.call(ctx, "GetDepartureBoard", &boardRequest{
		XMLName: xml.Name{Local: "ldb:GetDepartureBoardRequest"},
		NumRows: numRows,
		CRS:     crs,
	})
}

// ArrivalBoard returns up to numRows arrivals at the station.
func (c *Client) ArrivalBoard(ctx context.Context, numRows int, crs string) (*Object, error) {
	return c.call(ctx, "GetArrivalBoard", &boardRequest{
		XMLName: xml.Name{Local: "ldb:GetArrivalBoardRequest"},
		NumRows: numRows,
		CRS:     crs,
	})
}

// ServiceDetails returns the calling points of a service seen on a board.
func (c *Client) ServiceDetails(ctx context.Context, serviceID string) (*Object, error) {
	return c.call(ctx, "GetServiceDetails", &serviceDetailsRequest{ServiceID: serviceID})
}

func (c *Client) call(ctx context.Context, action string, request any) (*Object, error) {
	env := envelope{
		Soap:  soapNamespace,
		Typ:   tokenNamespace,
		LDB:   ldbNamespace,
		Token: c.token,
	}
	env.Body.Request = request

	payload, err := xml.Marshal(env)
	if err != nil {
		return nil, oops.With("action", action, "context", "failed to encode request").Wrap(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(append([]byte(xml.Header), payload...)))
	if err != nil {
		return nil, oops.With("action", action).Wrap(err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", `"`+actionPrefix+action+`"`)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, oops.With("action", action, "context", "request failed").Wrap(err)
	}
	defer resp.Body.Close()

	// Faults arrive with a 500 status, so the body is decoded before the
	// status is judged.
	result, err := Decode(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, oops.With("action", action, "status", resp.StatusCode).Wrap(err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, oops.With("action", action, "status", resp.StatusCode).Errorf("unexpected status from live departure board")
	}

	return result, nil
}
