package summary

import (
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/sashabaranov/go-openai"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindDisabled
	KindAuth
	KindRateLimit
	KindNetwork
)

// Ошибка анализа с сообщением для пользователя на его языке
type AnalysisError struct {
	Kind ErrorKind
	Lang string
	Err  error
}

var messages = map[ErrorKind]map[string]string{
	KindDisabled: {
		"en": "AI analysis is disabled. Set the OpenAI API key.",
		"ar": "التحليل بالذكاء الاصطناعي غير مفعل. يرجى تعيين مفتاح API.",
	},
	KindAuth: {
		"en": "API key error. Please check the API key.",
		"ar": "خطأ في مفتاح API. يرجى التحقق من المفتاح.",
	},
	KindRateLimit: {
		"en": "Rate limit exceeded. Please try again later.",
		"ar": "تم تجاوز الحد المسموح. يرجى المحاولة لاحقاً.",
	},
	KindNetwork: {
		"en": "Network error. Please check your internet connection.",
		"ar": "خطأ في الاتصال. يرجى التحقق من الاتصال بالإنترنت.",
	},
}

func (e *AnalysisError) Error() string {
	if msg, ok := messages[e.Kind][e.Lang]; ok {
		return msg
	}
	if msg, ok := messages[e.Kind]["en"]; ok {
		return msg
	}

	if e.Lang == "ar" {
		return fmt.Sprintf("خطأ في التحليل: %v", e.Err)
	}
	return fmt.Sprintf("Analysis error: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// Разбираем ошибку клиента openai по HTTP статусу
func classify(err error) ErrorKind {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return kindByStatus(apiErr.HTTPStatusCode)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return kindByStatus(reqErr.HTTPStatusCode)
	}

	var (
		urlErr *url.Error
		netErr net.Error
	)
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return KindNetwork
	}

	return KindUnknown
}

func kindByStatus(status int) ErrorKind {
	switch status {
	case 401:
		return KindAuth
	case 429:
		return KindRateLimit
	default:
		return KindUnknown
	}
}
