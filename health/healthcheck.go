package health

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/igbuch/fbRads/log"
)

type PingType string

const (
	Start   PingType = "start"
	Fail    PingType = "fail"
	Success PingType = "success"
)

// HealthCheckClient talks to HealthChecks.io
type HealthCheckClient struct {
	name string
	uuid string

	log *log.Logger
}

func NewHealthCheckClient(name, uuid string, log *log.Logger) *HealthCheckClient {
	return &HealthCheckClient{
		name: name,
		uuid: uuid,

		log: log,
	}
}

func (hm *HealthCheckClient) Start(message string) error {
	hm.log.Info().Str("name", hm.name).Msg("🩺 Starting health")
	return hm.ping(Start, message)
}

func (hm *HealthCheckClient) Success(message string) error {
	hm.log.Info().Str("name", hm.name).Msg("❤️  Health success")
	return hm.ping(Success, message)
}

func (hm *HealthCheckClient) Failed(message string) error {
	hm.log.Info().Str("name", hm.name).Msg("❤️‍🩹  Health failed")

	return hm.ping(Fail, message)
}

func (hm *HealthCheckClient) ping(ptype PingType, message string) error {
	url := fmt.Sprintf("https://hc-ping.com/%s", hm.uuid)
	if ptype == Fail || ptype == Start {
		url = fmt.Sprintf("https://hc-ping.com/%s/%s", hm.uuid, ptype)
	}

	data := map[string]string{
		"msg": message,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON data: %s", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to post data: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == 200 {
		return nil
	}

	hm.log.Error().Str("name", hm.name).Str("ping type", string(ptype)).Int("response code", resp.StatusCode).Msg("Health ping failed")
	return fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
}
