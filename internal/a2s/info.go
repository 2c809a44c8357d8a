// Package a2s implements the client side of the Source engine A2S_INFO query.
//
// A request is a single UDP datagram; the response is decoded into an immutable
// Info snapshot of the live server state.
package a2s

import "fmt"

// ServerType is the server type byte of an A2S_INFO response.
type ServerType byte

const (
	ServerTypeDedicated    ServerType = 'D'
	ServerTypeNonDedicated ServerType = 'L'
	ServerTypeProxy        ServerType = 'P'
)

// Valid reports whether t is one of the defined server types.
func (t ServerType) Valid() bool {
	switch t {
	case ServerTypeDedicated, ServerTypeNonDedicated, ServerTypeProxy:
		return true
	}
	return false
}

func (t ServerType) String() string {
	switch t {
	case ServerTypeDedicated:
		return "dedicated"
	case ServerTypeNonDedicated:
		return "non-dedicated"
	case ServerTypeProxy:
		return "proxy"
	}
	return fmt.Sprintf("unknown(%#x)", byte(t))
}

// Platform is the environment byte of an A2S_INFO response.
type Platform byte

const (
	PlatformLinux   Platform = 'L'
	PlatformWindows Platform = 'W'
	PlatformMac     Platform = 'M'

	// platformMacLegacy is sent by some servers running on macOS instead of 'M'.
	platformMacLegacy Platform = 'O'
)

// Valid reports whether p is one of the defined platforms.
func (p Platform) Valid() bool {
	switch p {
	case PlatformLinux, PlatformWindows, PlatformMac:
		return true
	}
	return false
}

func (p Platform) String() string {
	switch p {
	case PlatformLinux:
		return "linux"
	case PlatformWindows:
		return "windows"
	case PlatformMac:
		return "mac"
	}
	return fmt.Sprintf("unknown(%#x)", byte(p))
}

// Info is a snapshot of a live server. Values are never mutated after decoding.
type Info struct {
	Name            string     `json:"name"`
	Map             string     `json:"map"`
	Folder          string     `json:"folder"`
	Game            string     `json:"game"`
	GameID          uint16     `json:"game_id"`
	ProtocolVersion byte       `json:"protocol_version"`
	Players         byte       `json:"players"`
	MaxPlayers      byte       `json:"max_players"`
	Bots            byte       `json:"bots"`
	ServerType      ServerType `json:"server_type"`
	Platform        Platform   `json:"platform"`
	Public          bool       `json:"public"`
	VAC             bool       `json:"vac"`
}
