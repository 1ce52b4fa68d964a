package interaction

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Value shapes named in conversion errors.
const (
	shapeString  = "string"
	shapeBool    = "bool"
	shapeFloat   = "float64"
	shapeInt     = "int"
	shapeStrings = "[]string"
)

// GetString reads an attribute holding a string.
func (c *Client) GetString(ctx context.Context, name string, params url.Values) (string, error) {
	v, err := c.GetAttribute(ctx, name, params)
	if err != nil {
		return "", err
	}
	return toString(name, v)
}

// GetBool reads an attribute holding a boolean.
func (c *Client) GetBool(ctx context.Context, name string, params url.Values) (bool, error) {
	v, err := c.GetAttribute(ctx, name, params)
	if err != nil {
		return false, err
	}
	return toBool(name, v)
}

// GetFloat reads an attribute holding a number.
func (c *Client) GetFloat(ctx context.Context, name string, params url.Values) (float64, error) {
	v, err := c.GetAttribute(ctx, name, params)
	if err != nil {
		return 0, err
	}
	return toFloat(name, v)
}

// GetInt reads an attribute holding an integer.
func (c *Client) GetInt(ctx context.Context, name string, params url.Values) (int, error) {
	v, err := c.GetAttribute(ctx, name, params)
	if err != nil {
		return 0, err
	}
	return toInt(name, v)
}

// GetStrings reads an attribute holding a list of strings.
func (c *Client) GetStrings(ctx context.Context, name string, params url.Values) ([]string, error) {
	v, err := c.GetAttribute(ctx, name, params)
	if err != nil {
		return nil, err
	}
	return toStrings(name, v)
}

func toString(attribute string, v any) (string, error) {
	switch v.(type) {
	case nil, map[string]any, []any:
		return "", &ValueError{Attribute: attribute, Value: v, Want: shapeString, Err: errUnexpectedShape}
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", &ValueError{Attribute: attribute, Value: v, Want: shapeString, Err: err}
	}
	return s, nil
}

func toBool(attribute string, v any) (bool, error) {
	if v == nil {
		return false, &ValueError{Attribute: attribute, Value: v, Want: shapeBool, Err: errUnexpectedShape}
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, &ValueError{Attribute: attribute, Value: v, Want: shapeBool, Err: err}
	}
	return b, nil
}

func toFloat(attribute string, v any) (float64, error) {
	switch v.(type) {
	case nil, bool:
		return 0, &ValueError{Attribute: attribute, Value: v, Want: shapeFloat, Err: errUnexpectedShape}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, &ValueError{Attribute: attribute, Value: v, Want: shapeFloat, Err: err}
	}
	return f, nil
}

func toInt(attribute string, v any) (int, error) {
	switch n := v.(type) {
	case nil, bool:
		return 0, &ValueError{Attribute: attribute, Value: v, Want: shapeInt, Err: errUnexpectedShape}
	case float64:
		if n != float64(int(n)) {
			return 0, &ValueError{Attribute: attribute, Value: v, Want: shapeInt, Err: errNotIntegral}
		}
	case string:
		// Decimal only; cast would read a leading zero as octal.
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, &ValueError{Attribute: attribute, Value: v, Want: shapeInt, Err: err}
		}
		return i, nil
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return 0, &ValueError{Attribute: attribute, Value: v, Want: shapeInt, Err: err}
	}
	return i, nil
}

func toStrings(attribute string, v any) ([]string, error) {
	if v == nil {
		return []string{}, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, &ValueError{Attribute: attribute, Value: v, Want: shapeStrings, Err: errUnexpectedShape}
	}
	out, err := cast.ToStringSliceE(list)
	if err != nil {
		return nil, &ValueError{Attribute: attribute, Value: v, Want: shapeStrings, Err: err}
	}
	return out, nil
}
