package config

type RequestOptionsInterface interface {
	Method() string
	GetRawMethod() *string
	SetMethod(string)

	Url() string
	GetRawUrl() *string
	SetUrl(string)

	Async() bool
	GetRawAsync() *bool
	SetAsync(bool)
}
