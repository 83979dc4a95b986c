package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

var (
	ErrInvalidJSON  = errors.New("invalid JSON")
	ErrInvalidForm  = errors.New("invalid form data")
	ErrInvalidQuery = errors.New("invalid query parameter")
	ErrInvalidPath  = errors.New("invalid path parameter")
)

// maxBodySize caps JSON and form bodies.
const maxBodySize = 1 << 20

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

// BindJSON decodes an application/json body. Other content types are not
// applicable.
func BindJSON() Bind {
	return func(r *http.Request, v any) error {
		if mediaType(r) != "application/json" {
			return ErrNotApplicable
		}

		dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return errors.Join(ErrBadRequest, ErrInvalidJSON, errors.New("empty body"))
			}
			return errors.Join(ErrBadRequest, ErrInvalidJSON, err)
		}
		return nil
	}
}

// BindForm fills fields tagged `form:"name"` from a url-encoded or multipart
// body.
func BindForm() Bind {
	return func(r *http.Request, v any) error {
		switch mediaType(r) {
		case "application/x-www-form-urlencoded":
			r.Body = http.MaxBytesReader(nil, r.Body, maxBodySize)
			if err := r.ParseForm(); err != nil {
				return errors.Join(ErrBadRequest, ErrInvalidForm, err)
			}
			return bindValues(v, "form", r.PostForm, ErrInvalidForm)
		case "multipart/form-data":
			if err := r.ParseMultipartForm(maxBodySize); err != nil {
				return errors.Join(ErrBadRequest, ErrInvalidForm, err)
			}
			return bindValues(v, "form", url.Values(r.MultipartForm.Value), ErrInvalidForm)
		default:
			return ErrNotApplicable
		}
	}
}

// BindQuery fills fields tagged `query:"name"`.
func BindQuery() Bind {
	return func(r *http.Request, v any) error {
		return bindValues(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}

// BindPath fills fields tagged `path:"name"` using param, e.g. chi.URLParam.
func BindPath(param func(r *http.Request, name string) string) Bind {
	return func(r *http.Request, v any) error {
		return bindFields(v, "path", func(name string) (string, bool) {
			value := param(r, name)
			return value, value != ""
		}, ErrInvalidPath)
	}
}

func bindValues(v any, tag string, values url.Values, kind error) error {
	return bindFields(v, tag, func(name string) (string, bool) {
		if !values.Has(name) {
			return "", false
		}
		return values.Get(name), true
	}, kind)
}

func bindFields(v any, tag string, lookup func(name string) (string, bool), kind error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return errors.Join(kind, errors.New("target must be a pointer to struct"))
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rv.NumField() {
		field, sf := rv.Field(i), rt.Field(i)
		if !field.CanSet() {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get(tag), ",")
		if name == "" || name == "-" {
			continue
		}
		raw, ok := lookup(name)
		if !ok {
			continue
		}
		if err := setField(field, raw); err != nil {
			return errors.Join(ErrBadRequest, kind, fmt.Errorf("field %s: %w", name, err))
		}
	}
	return nil
}

func setField(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		if raw == "" || raw == "on" {
			field.SetBool(raw == "on")
			return nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int64, reflect.Int32:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}
