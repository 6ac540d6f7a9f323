package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const DBKey = "db"

// InjectDB makes the shared gorm handle available to everything below
// the router group, auth middleware included.
func InjectDB(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(DBKey, db)
		c.Next()
	}
}

func GetDB(c *gin.Context) *gorm.DB {
	if v, ok := c.Get(DBKey); ok {
		if db, ok := v.(*gorm.DB); ok {
			return db
		}
	}
	return nil
}
