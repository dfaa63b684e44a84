package mockapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"cardapio/internal/domain"
	apperrors "cardapio/internal/errors"
	"cardapio/internal/logger"
	"cardapio/internal/validate"
)

type restaurant struct {
	profile    domain.Restaurant
	username   domain.Username
	categories []domain.Category
}

type client struct {
	profile      domain.Client
	restaurant   domain.RestaurantID
	passwordHash []byte
}

type fault struct {
	status  int
	message string
	once    bool
}

// Server holds the in-memory restaurant data. The zero value is not usable;
// call New.
type Server struct {
	log *logger.Logger
	now func() time.Time

	mu          sync.RWMutex
	restaurants map[domain.Username]*restaurant
	clients     map[domain.ClientID]*client
	orders      map[domain.ClientID][]domain.Order
	faults      map[string]fault
	lastOrder   *domain.OrderSubmission
	nextID      int64
}

// New returns an empty server.
func New(log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		log:         log,
		now:         time.Now,
		restaurants: make(map[domain.Username]*restaurant),
		clients:     make(map[domain.ClientID]*client),
		orders:      make(map[domain.ClientID][]domain.Order),
		faults:      make(map[string]fault),
		nextID:      100,
	}
}

// SetClock replaces the time source used for order timestamps.
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// AddRestaurant registers a restaurant profile and its menu.
func (s *Server) AddRestaurant(username domain.Username, profile domain.Restaurant, categories []domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restaurants[username] = &restaurant{profile: profile, username: username, categories: categories}
}

// AddClient registers a client of the restaurant and returns its id.
func (s *Server) AddClient(restaurantID domain.RestaurantID, reg domain.Registration) (domain.Client, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.MinCost)
	if err != nil {
		return domain.Client{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c := &client{
		profile: domain.Client{
			ID:      domain.ClientID(s.nextID),
			Name:    reg.Name,
			Email:   strings.ToLower(strings.TrimSpace(reg.Email)),
			Address: reg.Address,
		},
		restaurant:   restaurantID,
		passwordHash: hash,
	}
	s.clients[c.profile.ID] = c
	return c.profile, nil
}

// Fail makes route (a chi route pattern such as "/order") answer with status
// and message until Recover is called.
func (s *Server) Fail(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[route] = fault{status: status, message: message}
}

// FailOnce is Fail for a single request.
func (s *Server) FailOnce(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[route] = fault{status: status, message: message, once: true}
}

// Recover clears every configured failure.
func (s *Server) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.faults)
}

// LastOrder returns the most recently accepted order submission.
func (s *Server) LastOrder() (domain.OrderSubmission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastOrder == nil {
		return domain.OrderSubmission{}, false
	}
	return *s.lastOrder, true
}

// OrderCount returns how many orders were accepted.
func (s *Server) OrderCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, list := range s.orders {
		n += len(list)
	}
	return n
}

// Handler returns the HTTP routes of the service.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		recoverer(s.log),
		requestID(s.log),
		logging(s.log),
		s.faultInjector,
	)

	r.Get("/{username}/", s.getRestaurant)
	r.Get("/{username}/categories", s.getCategories)
	r.Post("/{username}/client/login", s.login)
	r.Post("/client", s.register)
	r.Get("/client/{clientId}/orders", s.listOrders)
	r.Post("/order", s.createOrder)

	return r
}

func (s *Server) faultInjector(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		f, ok := s.faults[r.URL.Path]
		if ok && f.once {
			delete(s.faults, r.URL.Path)
		}
		s.mu.Unlock()
		if ok {
			writeMessage(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) lookup(r *http.Request) (*restaurant, bool) {
	username := domain.Username(chi.URLParam(r, "username"))
	s.mu.RLock()
	defer s.mu.RUnlock()
	rest, ok := s.restaurants[username]
	return rest, ok
}

func (s *Server) getRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, ok := s.lookup(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, rest.profile)
}

func (s *Server) getCategories(w http.ResponseWriter, r *http.Request) {
	rest, ok := s.lookup(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, rest.categories)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	rest, ok := s.lookup(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "restaurant not found")
		return
	}
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	s.mu.RLock()
	var match *client
	for _, c := range s.clients {
		if c.restaurant == rest.profile.ID && c.profile.Email == email {
			match = c
			break
		}
	}
	s.mu.RUnlock()

	if match == nil || bcrypt.CompareHashAndPassword(match.passwordHash, []byte(creds.Password)) != nil {
		writeMessage(w, http.StatusUnauthorized, "Email ou senha inválidos")
		return
	}
	writeJSON(w, http.StatusOK, match.profile)
}

type registerRequest struct {
	domain.Registration
	User *struct {
		ID domain.RestaurantID `json:"id"`
	} `json:"user"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.User == nil || !s.hasRestaurant(req.User.ID) {
		writeMessage(w, http.StatusBadRequest, "unknown restaurant")
		return
	}
	if err := validate.Struct(req.Registration); err != nil {
		writeMessage(w, http.StatusBadRequest, apperrors.As(err).Message())
		return
	}
	if s.emailTaken(req.User.ID, req.Email) {
		writeMessage(w, http.StatusConflict, "Email já cadastrado")
		return
	}
	created, err := s.AddClient(req.User.ID, req.Registration)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) hasRestaurant(id domain.RestaurantID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rest := range s.restaurants {
		if rest.profile.ID == id {
			return true
		}
	}
	return false
}

func (s *Server) emailTaken(id domain.RestaurantID, email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.restaurant == id && c.profile.Email == email {
			return true
		}
	}
	return false
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "clientId"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid client id")
		return
	}
	s.mu.RLock()
	list := append([]domain.Order(nil), s.orders[domain.ClientID(id)]...)
	s.mu.RUnlock()

	if len(list) == 0 {
		// The real service answers an empty history with an empty body.
		w.WriteHeader(http.StatusOK)
		return
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var sub domain.OrderSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(sub.Items) == 0 {
		writeMessage(w, http.StatusBadRequest, "order has no items")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.clients[sub.ClientID]
	if !ok {
		writeMessage(w, http.StatusNotFound, "client not found")
		return
	}
	if sub.RestaurantID != nil && *sub.RestaurantID != owner.restaurant {
		writeMessage(w, http.StatusBadRequest, "client does not belong to restaurant")
		return
	}
	catalog := s.productsOf(owner.restaurant)

	s.nextID++
	order := domain.Order{
		ID:           domain.OrderID(s.nextID),
		Status:       sub.Status,
		Observations: sub.Observations,
		CreatedAt:    s.now().Format("2006-01-02T15:04:05"),
		Total:        decimal.Zero,
	}
	for _, item := range sub.Items {
		product, ok := catalog[item.ProductID]
		if !ok {
			writeMessage(w, http.StatusBadRequest, "unknown product "+item.ProductID.String())
			return
		}
		if item.Quantity <= 0 {
			writeMessage(w, http.StatusBadRequest, "quantity must be positive")
			return
		}
		s.nextID++
		line := domain.OrderItem{
			ID:       s.nextID,
			Quantity: item.Quantity,
			Price:    item.Price,
			Discount: decimal.Zero,
			Product:  product,
		}
		total := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		for _, add := range item.AddOns {
			addOn, ok := product.AddOn(add.AddOnID)
			if !ok {
				writeMessage(w, http.StatusBadRequest, "unknown add-on "+add.AddOnID.String())
				return
			}
			s.nextID++
			line.AddOns = append(line.AddOns, domain.OrderItemAddOn{
				ID:       s.nextID,
				AddOn:    addOn,
				Quantity: add.Quantity,
				Price:    addOn.Price,
			})
			total = total.Add(addOn.Price)
		}
		line.Total = total
		order.Items = append(order.Items, line)
		order.Total = order.Total.Add(total)
	}

	s.orders[sub.ClientID] = append(s.orders[sub.ClientID], order)
	stored := sub
	s.lastOrder = &stored
	writeJSON(w, http.StatusCreated, order)
}

// productsOf indexes the restaurant's menu by product id. Callers hold s.mu.
func (s *Server) productsOf(id domain.RestaurantID) map[domain.ProductID]domain.Product {
	out := make(map[domain.ProductID]domain.Product)
	for _, rest := range s.restaurants {
		if rest.profile.ID != id {
			continue
		}
		for _, cat := range rest.categories {
			for _, p := range cat.Products {
				out[p.ID] = p
			}
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
