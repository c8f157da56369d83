package mailer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTemplateKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "welcome", templateKey("welcome"))
	assert.Equal(t, "welcome", templateKey("welcome.hbs"))
	assert.Equal(t, "reset", templateKey("auth/reset.hbs"))
}

func TestTemplateFiles_Path(t *testing.T) {
	t.Parallel()

	f := &templateFiles{dir: DefaultTemplateDir}
	assert.Equal(t, "public/templates/welcome.pug", f.path("welcome", pugExt))

	f = &templateFiles{dir: "/srv/mail"}
	assert.Equal(t, "/srv/mail/auth/reset.hbs", f.path("auth/reset", handlebarsExt))
}

func TestPugRenderer(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"templates/hello.pug": &fstest.MapFile{Data: []byte("p Hello from pug\n")},
	}
	transport := &MockTransport{}
	m, err := New(Config{
		Transport:       transport,
		TemplateDir:     "templates",
		TemplateOptions: &TemplateOptions{Engine: "PUG"},
	}, WithFileSystem(fsys))
	require.NoError(t, err)

	transport.On("Send", mock.Anything, mock.MatchedBy(func(msg *Message) bool {
		return strings.Contains(msg.HTML, "<p>") && strings.Contains(msg.HTML, "Hello from pug")
	})).Return(&SendResult{}, nil)

	_, err = m.Send(context.Background(), &Message{Template: "hello"})
	require.NoError(t, err)
	transport.AssertExpectations(t)
}

func TestPugRenderer_RendersContext(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"templates/greet.pug": &fstest.MapFile{Data: []byte("p Hello #{.name}\n")},
	}
	transport := &MockTransport{}
	m, err := New(Config{Transport: transport, TemplateDir: "templates"}, WithFileSystem(fsys))
	require.NoError(t, err)

	transport.On("Send", mock.Anything, mock.MatchedBy(func(msg *Message) bool {
		return strings.Contains(msg.HTML, "<p>Hello Alice</p>")
	})).Return(&SendResult{}, nil).Once()
	transport.On("Send", mock.Anything, mock.MatchedBy(func(msg *Message) bool {
		return strings.Contains(msg.HTML, "<p>Hello Bob</p>")
	})).Return(&SendResult{}, nil).Once()

	_, err = m.Send(context.Background(), &Message{Template: "greet", Context: map[string]any{"name": "Alice"}})
	require.NoError(t, err)
	_, err = m.Send(context.Background(), &Message{Template: "greet", Context: map[string]any{"name": "Bob"}})
	require.NoError(t, err)
	transport.AssertExpectations(t)
}

func TestRenderPug(t *testing.T) {
	t.Parallel()

	html, err := renderPug("greet.pug", []byte("p Hello #{.name}\n"), map[string]any{"name": "<Eve>"})
	require.NoError(t, err)
	assert.Contains(t, html, "<p>Hello &lt;Eve&gt;</p>")

	_, err = renderPug("bare.pug", []byte("p Hello #{name}\n"), map[string]any{"name": "Alice"})
	require.Error(t, err)
}

func TestPugRenderer_MissingTemplate(t *testing.T) {
	t.Parallel()

	transport := &MockTransport{}
	m, err := New(Config{Transport: transport, TemplateDir: "templates"}, WithFileSystem(fstest.MapFS{}))
	require.NoError(t, err)

	_, err = m.Send(context.Background(), &Message{Template: "missing"})

	require.ErrorIs(t, err, ErrTemplateNotFound)
	require.ErrorIs(t, err, ErrRenderFailed)
	transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestHandlebars_FromOSFilesystem(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "welcome.hbs"), []byte(`Hi {{name}}!`), 0o600))

	transport := &MockTransport{}
	m, err := New(Config{
		Transport:       transport,
		TemplateDir:     dir,
		TemplateOptions: &TemplateOptions{Engine: EngineHandlebars},
	})
	require.NoError(t, err)

	transport.On("Send", mock.Anything, mock.MatchedBy(func(msg *Message) bool {
		return msg.HTML == "Hi Alice!"
	})).Return(&SendResult{MessageID: "m"}, nil)

	res, err := m.Send(context.Background(), &Message{Template: "welcome", Context: map[string]string{"name": "Alice"}})
	require.NoError(t, err)
	require.Equal(t, "m", res.MessageID)
}

func TestHandlebarsCompiler(t *testing.T) {
	t.Parallel()

	fn, err := HandlebarsCompiler("greet", `{{#each items}}<li>{{this}}</li>{{/each}}`)
	require.NoError(t, err)

	out, err := fn(map[string]any{"items": []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "<li>a</li><li>b</li>", out)

	_, err = HandlebarsCompiler("bad", `{{#if}}`)
	require.Error(t, err)
}
