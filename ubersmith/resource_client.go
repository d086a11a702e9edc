package ubersmith

import "context"

// ClientResource wraps the "client" namespace.
type ClientResource struct {
	*Resource
}

// Client returns the "client" namespace.
func (c *Client) Client() *ClientResource {
	return &ClientResource{Resource: c.Namespace("client")}
}

// Add creates a client and returns its id.
func (r *ClientResource) Add(ctx context.Context, params Params) (int64, error) {
	var id int64
	if err := r.CallInto(ctx, "add", params, &id); err != nil {
		return 0, err
	}

	return id, nil
}

// Get returns the client record selected by params, usually client_id.
func (r *ClientResource) Get(ctx context.Context, params Params) (map[string]interface{}, error) {
	var record map[string]interface{}
	if err := r.CallInto(ctx, "get", params, &record); err != nil {
		return nil, err
	}

	return record, nil
}

// Update changes the client selected by params and reports success.
func (r *ClientResource) Update(ctx context.Context, params Params) (bool, error) {
	var ok bool
	if err := r.CallInto(ctx, "update", params, &ok); err != nil {
		return false, err
	}

	return ok, nil
}

// List returns client records keyed by client id.
func (r *ClientResource) List(ctx context.Context, params Params) (map[string]map[string]interface{}, error) {
	var records map[string]map[string]interface{}
	if err := r.CallInto(ctx, "list", params, &records); err != nil {
		return nil, err
	}

	return records, nil
}
