package tg

import (
	"github.com/zelenin/go-tdlib/client"

	"github.com/larriantoniy/tg_carbon_bot/internal/config"
)

const (
	systemLanguage     = "en"
	deviceModel        = "Server"
	systemVersion      = "Linux"
	applicationVersion = "1.0"
)

// tdParams: ботам не нужны секретные чаты и база сообщений, только файлы и чаты.
func tdParams(cfg config.TelegramConfig, dbDir, filesDir string) *client.SetTdlibParametersRequest {
	return &client.SetTdlibParametersRequest{
		UseTestDc:           false,
		DatabaseDirectory:   dbDir,
		FilesDirectory:      filesDir,
		UseFileDatabase:     false,
		UseChatInfoDatabase: true,
		UseMessageDatabase:  false,
		UseSecretChats:      false,
		ApiId:               cfg.ApiID,
		ApiHash:             cfg.ApiHash,
		SystemLanguageCode:  systemLanguage,
		DeviceModel:         deviceModel,
		SystemVersion:       systemVersion,
		ApplicationVersion:  applicationVersion,
	}
}
