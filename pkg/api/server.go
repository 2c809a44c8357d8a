package api

// PublicPorts описывает публичные порты игрового сервера
type PublicPorts struct {
	Game int `json:"game"` // игровой порт
	Ping int `json:"ping"` // порт ping
	A2S  int `json:"a2s"`  // порт A2S query
}

// Mod описывает мод, загруженный на сервере
type Mod struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Version      string `json:"version"`
}

// StaticServerInfo is the part of a listing that does not change while the server runs.
type StaticServerInfo struct {
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	Mods              []Mod       `json:"mods"`
	Ports             PublicPorts `json:"ports"`
	PasswordProtected bool        `json:"password_protected"`
}

// ServerInfo is a listing: static metadata plus the live fields taken from A2S.
type ServerInfo struct {
	StaticServerInfo
	CurrentMap  string `json:"current_map"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
}

// UniqueServerInfo is a listing as identified by the backend.
type UniqueServerInfo struct {
	ServerInfo
	UniqueID      string  `json:"unique_id"`
	LastHeartbeat float64 `json:"last_heartbeat"`
}

// ResponseServer is the canonical server record returned by the backend.
type ResponseServer struct {
	UniqueServerInfo
	LocalIPAddress string `json:"local_ip_address"`
	IPAddress      string `json:"ip_address"`
}

// RegisterServerRequest представляет запрос на регистрацию сервера
type RegisterServerRequest struct {
	ServerInfo
	LocalIPAddress string `json:"local_ip_address"`
}

// RegisterServerResponse представляет ответ на успешную регистрацию
type RegisterServerResponse struct {
	Key           string         `json:"key"`            // секретный ключ для всех дальнейших запросов
	Server        ResponseServer `json:"server"`         // каноническая запись сервера
	RefreshBefore float64        `json:"refresh_before"` // unix-время (секунды), до которого нужен heartbeat
}

// UpdateServerRequest представляет запрос на обновление живых полей листинга
type UpdateServerRequest struct {
	CurrentMap  string `json:"current_map"`
	Name        string `json:"name,omitempty"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
}

// UpdateServerResponse is returned by both update and heartbeat endpoints.
type UpdateServerResponse struct {
	Server        ResponseServer `json:"server"`
	RefreshBefore float64        `json:"refresh_before"`
}
