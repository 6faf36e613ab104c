package config

type RequestOptions struct {

	// The HTTP verb for the request. Validated against the supported set and
	// normalized to upper case when applied to a builder.
	// @default "GET"
	method *string

	// The target of the request.
	// @default "/"
	url *string

	// Whether the exchange runs asynchronously. When false, send blocks the
	// caller until the terminal event fires.
	// @default true
	async *bool
}

func DefaultRequestOptions() *RequestOptions {
	return &RequestOptions{}
}

func (o *RequestOptions) Assign(data RequestOptionsInterface) RequestOptionsInterface {
	if data == nil {
		return o
	}

	if data.GetRawMethod() != nil {
		o.SetMethod(data.Method())
	}
	if data.GetRawUrl() != nil {
		o.SetUrl(data.Url())
	}
	if data.GetRawAsync() != nil {
		o.SetAsync(data.Async())
	}

	return o
}

func (o *RequestOptions) Method() string {
	if o.method == nil {
		return ""
	}
	return *o.method
}
func (o *RequestOptions) GetRawMethod() *string {
	return o.method
}
func (o *RequestOptions) SetMethod(method string) {
	o.method = &method
}

func (o *RequestOptions) Url() string {
	if o.url == nil {
		return ""
	}
	return *o.url
}
func (o *RequestOptions) GetRawUrl() *string {
	return o.url
}
func (o *RequestOptions) SetUrl(url string) {
	o.url = &url
}

func (o *RequestOptions) Async() bool {
	if o.async == nil {
		return true
	}
	return *o.async
}
func (o *RequestOptions) GetRawAsync() *bool {
	return o.async
}
func (o *RequestOptions) SetAsync(async bool) {
	o.async = &async
}
