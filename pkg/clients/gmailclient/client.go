package gmailclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/CatmanJunior/RoosterDIMS/internal/config"
	"github.com/CatmanJunior/RoosterDIMS/pkg/utils"
)

// Client wraps the Gmail API client used to deliver the published schedule
// (§10.6) as a best-effort notification after a successful run.
type Client struct {
	service      *gmail.Service
	ctx          context.Context
	lastSendTime time.Time
	sendMutex    sync.Mutex
}

// NewClient creates a new Gmail client using an existing OAuth token.
// The token only needs the gmail.send scope (utils.ScopeGmailSend).
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, token *oauth2.Token) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)

	service, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &Client{
		service: service,
		ctx:     ctx,
	}, nil
}

// Attachment is one CSV file to carry alongside the published-schedule email.
type Attachment struct {
	Filename string
	Content  []byte
}

// SendSchedule emails the rendered schedule body to recipient, with the
// exported CSVs (filled shifts, penalty breakdown) attached. Send failures
// are returned to the caller, who per §7 must treat them as best-effort and
// not let them corrupt an already-produced in-memory result.
func (c *Client) SendSchedule(from, recipient, subject, body string, attachments []Attachment) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	raw, err := buildMessage(from, recipient, subject, body, attachments)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	msg := &gmail.Message{Raw: raw}
	if _, err := c.service.Users.Messages.Send("me", msg).Context(c.ctx).Do(); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	c.lastSendTime = time.Now()
	return nil
}

func buildMessage(from, recipient, subject, body string, attachments []Attachment) (string, error) {
	boundary := "rooster-schedule-boundary"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	fmt.Fprintf(&b, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	fmt.Fprintf(&b, "Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(body)
	b.WriteString("\r\n\r\n")

	for _, a := range attachments {
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		fmt.Fprintf(&b, "Content-Type: text/csv; name=%q\r\n", a.Filename)
		fmt.Fprintf(&b, "Content-Disposition: attachment; filename=%q\r\n", a.Filename)
		fmt.Fprintf(&b, "Content-Transfer-Encoding: base64\r\n\r\n")
		b.WriteString(base64.StdEncoding.EncodeToString(a.Content))
		b.WriteString("\r\n\r\n")
	}
	fmt.Fprintf(&b, "--%s--", boundary)

	return base64.URLEncoding.EncodeToString([]byte(b.String())), nil
}
