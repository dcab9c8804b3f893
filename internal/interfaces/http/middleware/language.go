package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"bilig/internal/shared/constants"
)

// ContextKeyLang is the gin context key holding the negotiated content
// language ("mn" or "en").
const ContextKeyLang = "lang"

var supportedLanguages = language.NewMatcher([]language.Tag{
	language.Mongolian, // default
	language.English,
})

// Language negotiates the response language. An explicit ?lang= query
// parameter wins over the Accept-Language header; Mongolian is the
// default for everything else.
func Language() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := constants.LangMongolian

		if q := c.Query("lang"); q == constants.LangEnglish || q == constants.LangMongolian {
			lang = q
		} else if accept := c.GetHeader("Accept-Language"); accept != "" {
			tag, _ := language.MatchStrings(supportedLanguages, accept)
			if base, _ := tag.Base(); base.String() == constants.LangEnglish {
				lang = constants.LangEnglish
			}
		}

		c.Set(ContextKeyLang, lang)
		c.Next()
	}
}

// Lang returns the negotiated language for the request.
func Lang(c *gin.Context) string {
	if lang := c.GetString(ContextKeyLang); lang != "" {
		return lang
	}
	return constants.LangMongolian
}
