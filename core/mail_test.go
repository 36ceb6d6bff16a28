package core_test

import (
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abovethehill/churchadmin/core"
)

func TestEmailMessage_Render(t *testing.T) {
	t.Run("plain body passes through", func(t *testing.T) {
		msg := core.EmailMessage{
			To:      []mail.Address{{Address: "pastor@test.cd"}},
			Subject: "Hello",
			BodyStr: "plain content",
		}
		require.NoError(t, msg.Render())
		assert.Equal(t, "plain content", msg.TextContent)
		assert.Empty(t, msg.HTMLContent)
		assert.True(t, msg.HasRecipients())
		assert.True(t, msg.HasContent())
	})

	t.Run("unknown template yields no content", func(t *testing.T) {
		msg := core.EmailMessage{
			To:           []mail.Address{{Address: "pastor@test.cd"}},
			Subject:      "Hello",
			TemplateName: "no_such_template",
		}
		require.NoError(t, msg.Render())
		assert.False(t, msg.HasContent())
	})

	t.Run("no recipients", func(t *testing.T) {
		msg := core.EmailMessage{Subject: "Hello", BodyStr: "content"}
		require.NoError(t, msg.Render())
		assert.False(t, msg.HasRecipients())
	})
}
