package qn

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rbcervilla/redisstore/v8"
	"gorm.io/gorm"
)

// Global holds every shared collaborator. Commands and tests wire the
// fields during startup, everything else reads them.
type Global struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Session *redisstore.RedisStore
	Engine  *gin.Engine

	Hook *HookRegistry

	User       UserHandler
	Group      GroupHandler
	Token      TokenHandler
	Permission PermissionHandler
	Event      EventHandler
	Setting    SettingHandler
}

const Version = "1.0.0"

var Quill = Global{
	Hook: NewHookRegistry(),
}
