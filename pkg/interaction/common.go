package interaction

import (
	"context"
	"net/url"
	"strings"

	"github.com/alpaca-client/alpaca-go/pkg/wire"
)

// Common attribute and method names.
const (
	AttrAction           = "action"
	AttrCommandBlind     = "commandblind"
	AttrCommandBool      = "commandbool"
	AttrCommandString    = "commandstring"
	AttrConnected        = "connected"
	AttrDescription      = "description"
	AttrDriverInfo       = "driverinfo"
	AttrDriverVersion    = "driverversion"
	AttrInterfaceVersion = "interfaceversion"
	AttrName             = "name"
	AttrSupportedActions = "supportedactions"
)

// InvokeAction runs a device specific action. Parameters are sent joined
// by commas.
func (c *Client) InvokeAction(ctx context.Context, actionName string, parameters ...string) (string, error) {
	env, err := c.Put(ctx, AttrAction, url.Values{
		wire.ParamAction:     {actionName},
		wire.ParamParameters: {strings.Join(parameters, ",")},
	})
	if err != nil {
		return "", err
	}
	return toString(AttrAction, env.Value)
}

// SendBlind transmits a command without waiting for a reply.
func (c *Client) SendBlind(ctx context.Context, command string, raw bool) error {
	return c.SetAttribute(ctx, AttrCommandBlind, commandParams(command, raw))
}

// SendBoolReply transmits a command and returns its boolean reply.
func (c *Client) SendBoolReply(ctx context.Context, command string, raw bool) (bool, error) {
	env, err := c.Put(ctx, AttrCommandBool, commandParams(command, raw))
	if err != nil {
		return false, err
	}
	return toBool(AttrCommandBool, env.Value)
}

// SendStringReply transmits a command and returns its string reply.
func (c *Client) SendStringReply(ctx context.Context, command string, raw bool) (string, error) {
	env, err := c.Put(ctx, AttrCommandString, commandParams(command, raw))
	if err != nil {
		return "", err
	}
	return toString(AttrCommandString, env.Value)
}

func commandParams(command string, raw bool) url.Values {
	return url.Values{
		wire.ParamCommand: {command},
		wire.ParamRaw:     {wire.FormatBool(raw)},
	}
}

// Connected reads the hardware connection state. It is never cached:
// a hub may keep the hardware connected after this client disconnects.
func (c *Client) Connected(ctx context.Context) (bool, error) {
	return c.GetBool(ctx, AttrConnected, nil)
}

// SetConnected connects or disconnects the device hardware.
func (c *Client) SetConnected(ctx context.Context, connected bool) error {
	return c.SetAttribute(ctx, AttrConnected, url.Values{
		wire.ParamConnected: {wire.FormatBool(connected)},
	})
}

// Description returns the device description.
func (c *Client) Description(ctx context.Context) (string, error) {
	return c.GetString(ctx, AttrDescription, nil)
}

// DriverInfo returns the driver information split on commas.
func (c *Client) DriverInfo(ctx context.Context) ([]string, error) {
	s, err := c.GetString(ctx, AttrDriverInfo, nil)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

// DriverVersion returns the driver version string, normally "major.minor".
func (c *Client) DriverVersion(ctx context.Context) (string, error) {
	return c.GetString(ctx, AttrDriverVersion, nil)
}

// DriverVersionNumber returns the driver version as a number.
func (c *Client) DriverVersionNumber(ctx context.Context) (float64, error) {
	v, err := c.GetAttribute(ctx, AttrDriverVersion, nil)
	if err != nil {
		return 0, err
	}
	return toFloat(AttrDriverVersion, v)
}

// InterfaceVersion returns the version of the device interface implemented.
func (c *Client) InterfaceVersion(ctx context.Context) (int, error) {
	return c.GetInt(ctx, AttrInterfaceVersion, nil)
}

// Name returns the short display name of the driver.
func (c *Client) Name(ctx context.Context) (string, error) {
	return c.GetString(ctx, AttrName, nil)
}

// SupportedActions returns the action names in server order.
func (c *Client) SupportedActions(ctx context.Context) ([]string, error) {
	return c.GetStrings(ctx, AttrSupportedActions, nil)
}

// Info is the common information of a device.
type Info struct {
	Name             string
	Description      string
	DriverInfo       []string
	DriverVersion    string
	InterfaceVersion int
	SupportedActions []string
	Connected        bool
}

// ReadInfo reads the common information. It stops at the first error.
func (c *Client) ReadInfo(ctx context.Context) (*Info, error) {
	var (
		info Info
		err  error
	)
	if info.Name, err = c.Name(ctx); err != nil {
		return nil, err
	}
	if info.Description, err = c.Description(ctx); err != nil {
		return nil, err
	}
	if info.DriverInfo, err = c.DriverInfo(ctx); err != nil {
		return nil, err
	}
	if info.DriverVersion, err = c.DriverVersion(ctx); err != nil {
		return nil, err
	}
	if info.InterfaceVersion, err = c.InterfaceVersion(ctx); err != nil {
		return nil, err
	}
	if info.SupportedActions, err = c.SupportedActions(ctx); err != nil {
		return nil, err
	}
	if info.Connected, err = c.Connected(ctx); err != nil {
		return nil, err
	}
	return &info, nil
}
