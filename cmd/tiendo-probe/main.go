// Command tiendo-probe exercises a running Tiendo server through the same
// client components the storefront uses: it walks the account modal flow,
// loads the catalog and product pages and, when admin credentials are
// supplied, drives the admin shell.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/TiendoLabs/tiendo-go/internal/frontend/account"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/adminshell"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/api"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/fragment"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/modal"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/pages"
	"github.com/TiendoLabs/tiendo-go/internal/presentation/templates"
)

type logPanel struct {
	name string
	last string
}

func (p *logPanel) SetContent(html string) {
	p.last = html
	log.Printf("[%s] panel updated (%d bytes)", p.name, len(html))
}

type logNotifier struct{ name string }

func (n *logNotifier) Notify(message string) {
	log.Printf("[%s] notification: %s", n.name, message)
}

type logNavigator struct{}

func (logNavigator) NavigateTo(target string) {
	log.Printf("[admin] navigating to %s", target)
}

func main() {
	baseURL := flag.String("base-url", "http://localhost:8000", "server to probe")
	clienteID := flag.Int("cliente", 1, "customer identity for the page controllers")
	productID := flag.Int("producto", 1, "product to load and add to cart")
	adminUser := flag.String("admin-user", "", "admin username (admin shell skipped when empty)")
	adminPass := flag.String("admin-pass", "", "admin password")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatalf("cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	loader, err := fragment.NewLoader(client, *baseURL, nil)
	if err != nil {
		log.Fatalf("loader: %v", err)
	}
	engine, err := fragment.NewEngine(func(ctx context.Context, script fragment.Script) error {
		if script.External() {
			log.Printf("[script] external %s", script.Src)
		} else {
			log.Printf("[script] inline (%d bytes)", len(script.Inline))
		}
		return nil
	}, nil)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}

	apiClient, err := api.New(client, *baseURL)
	if err != nil {
		log.Fatalf("api client: %v", err)
	}

	probeAccountFlow(ctx, loader, engine)
	probeStorefront(ctx, apiClient, *clienteID, *productID)

	if *adminUser != "" {
		probeAdminShell(ctx, client, *baseURL, loader, engine, *adminUser, *adminPass)
	}

	log.Println("probe complete")
}

func probeAccountFlow(ctx context.Context, loader *fragment.Loader, engine *fragment.Engine) {
	m, err := modal.New(templates.AccountMenuFragment)
	if err != nil {
		log.Fatalf("modal: %v", err)
	}
	flow, err := account.New(loader, engine, m, nil)
	if err != nil {
		log.Fatalf("account flow: %v", err)
	}

	flow.Open()
	flow.ShowLogin(ctx)
	log.Printf("[account] state after login trigger: %s", flow.State())
	flow.ShowRegister(ctx)
	log.Printf("[account] state after register trigger: %s", flow.State())
	flow.Dismiss()
	log.Printf("[account] state after dismiss: %s", flow.State())
}

func probeStorefront(ctx context.Context, apiClient *api.Client, clienteID, productID int) {
	catalogPanel := &logPanel{name: "catalog"}
	catalogCtrl, err := pages.NewCatalogController(apiClient, catalogPanel)
	if err != nil {
		log.Fatalf("catalog controller: %v", err)
	}
	if err := catalogCtrl.Load(ctx); err != nil {
		log.Printf("[catalog] load failed: %v", err)
	}

	productPanel := &logPanel{name: "product"}
	productCtrl, err := pages.NewProductController(apiClient, clienteID, productPanel, &logNotifier{name: "product"})
	if err != nil {
		log.Fatalf("product controller: %v", err)
	}
	if err := productCtrl.Load(ctx, productID); err != nil {
		log.Printf("[product] load failed: %v", err)
	} else if err := productCtrl.AddToCart(ctx, 1); err != nil {
		log.Printf("[product] add to cart failed: %v", err)
	}

	cartPanel := &logPanel{name: "cart"}
	cartCtrl, err := pages.NewCartController(apiClient, clienteID, cartPanel, &logNotifier{name: "cart"})
	if err != nil {
		log.Fatalf("cart controller: %v", err)
	}
	if err := cartCtrl.Load(ctx); err != nil {
		log.Printf("[cart] load failed: %v", err)
	}
}

func probeAdminShell(ctx context.Context, client *http.Client, baseURL string, loader *fragment.Loader, engine *fragment.Engine, username, password string) {
	if err := adminLogin(ctx, client, baseURL, username, password); err != nil {
		log.Printf("[admin] login failed: %v", err)
		return
	}

	dialogs, err := modal.New(func() string { return "" })
	if err != nil {
		log.Fatalf("admin dialogs: %v", err)
	}
	panel := &logPanel{name: "admin"}
	shell, err := adminshell.New(client, baseURL, loader, engine, logNavigator{}, panel, dialogs, nil)
	if err != nil {
		log.Fatalf("admin shell: %v", err)
	}

	shell.CheckSession(ctx)
	log.Printf("[admin] state after session check: %s (user %q)", shell.State(), shell.Username())
	if shell.State() != adminshell.StateAuthorized {
		return
	}

	for _, module := range templates.AdminModuleNames() {
		shell.SelectModule(ctx, module)
		log.Printf("[admin] module %s loaded, highlighted=%t", module, shell.Highlighted(module))
	}

	shell.Logout(ctx)
	log.Printf("[admin] state after logout: %s", shell.State())
}

func adminLogin(ctx context.Context, client *http.Client, baseURL, username, password string) error {
	form := url.Values{"username": {username}, "password": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/admin/login", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
