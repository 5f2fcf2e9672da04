package server

import "encoding/json"

// DefaultStatusJSON builds the vanilla server-list-ping response body: the
// version block, player counts, and MOTD. It has no access to the real
// online player list, so the body carries no player sample.
func DefaultStatusJSON(protocolVersion int32, protocolName string) func(int, int, string) string {
	return func(online, max int, motd string) string {
		resp := statusResponse{}
		resp.Version.Name = protocolName
		resp.Version.Protocol = protocolVersion
		resp.Players.Online = online
		resp.Players.Max = max
		resp.Description.Text = motd
		body, err := json.Marshal(resp)
		if err != nil {
			return `{"version":{"name":"unknown","protocol":0},"players":{"max":0,"online":0},"description":{"text":""}}`
		}
		return string(body)
	}
}

type statusResponse struct {
	Version struct {
		Name     string `json:"name"`
		Protocol int32  `json:"protocol"`
	} `json:"version"`
	Players struct {
		Max    int `json:"max"`
		Online int `json:"online"`
	} `json:"players"`
	Description struct {
		Text string `json:"text"`
	} `json:"description"`
}
