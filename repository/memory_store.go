package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"hotel-reservasi/models"

	"gorm.io/gorm"
)

type memData struct {
	kamar       map[uint]models.Kamar
	tamu        map[uint]models.Tamu
	reservasi   map[uint]models.Reservasi
	pembayaran  map[uint]models.Pembayaran
	resepsionis map[uint]models.Resepsionis
	seq         map[string]uint
}

func newMemData() *memData {
	return &memData{
		kamar:       map[uint]models.Kamar{},
		tamu:        map[uint]models.Tamu{},
		reservasi:   map[uint]models.Reservasi{},
		pembayaran:  map[uint]models.Pembayaran{},
		resepsionis: map[uint]models.Resepsionis{},
		seq:         map[string]uint{},
	}
}

func (d *memData) clone() *memData {
	c := newMemData()
	for k, v := range d.kamar {
		c.kamar[k] = v
	}
	for k, v := range d.tamu {
		c.tamu[k] = v
	}
	for k, v := range d.reservasi {
		c.reservasi[k] = v
	}
	for k, v := range d.pembayaran {
		c.pembayaran[k] = v
	}
	for k, v := range d.resepsionis {
		c.resepsionis[k] = v
	}
	for k, v := range d.seq {
		c.seq[k] = v
	}
	return c
}

func (d *memData) next(table string) uint {
	d.seq[table]++
	return d.seq[table]
}

// MemoryStore keeps every table in process memory. It backs DB_DRIVER=memory
// for local runs and the test suites. Transactions work on a copy of the data
// that replaces the live set only when fn succeeds.
type MemoryStore struct {
	mu   *sync.Mutex
	data *memData
	inTx bool
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{mu: &sync.Mutex{}, data: newMemData(), now: time.Now}
}

func (s *MemoryStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *MemoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	unlock := s.lock()
	defer unlock()

	snapshot := s.data.clone()
	tx := &MemoryStore{mu: s.mu, data: snapshot, inTx: true, now: s.now}
	if err := fn(tx); err != nil {
		return err
	}
	*s.data = *snapshot
	return nil
}

// ----------------------------------------------------
// kamar
// ----------------------------------------------------

func (s *MemoryStore) FindKamar(ctx context.Context, id uint) (*models.Kamar, error) {
	defer s.lock()()
	k, ok := s.data.kamar[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &k, nil
}

func (s *MemoryStore) LockKamar(ctx context.Context, id uint) (*models.Kamar, error) {
	return s.FindKamar(ctx, id)
}

func (s *MemoryStore) ListKamar(ctx context.Context, f KamarFilter) ([]models.Kamar, error) {
	defer s.lock()()
	list := make([]models.Kamar, 0, len(s.data.kamar))
	for _, k := range s.data.kamar {
		if f.TipeKamar != "" && k.TipeKamar != f.TipeKamar {
			continue
		}
		if f.StatusKamar != "" && k.StatusKamar != f.StatusKamar {
			continue
		}
		list = append(list, k)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].NomorKamar < list[j].NomorKamar })
	return list, nil
}

func (s *MemoryStore) CreateKamar(ctx context.Context, k *models.Kamar) error {
	defer s.lock()()
	for _, other := range s.data.kamar {
		if other.NomorKamar == k.NomorKamar {
			return fmt.Errorf("%w: kamar.nomor_kamar %s", ErrDuplicateKey, k.NomorKamar)
		}
	}
	if k.StatusKamar == "" {
		k.StatusKamar = models.KamarTersedia
	}
	k.ID = s.data.next("kamar")
	k.CreatedAt = s.now()
	k.UpdatedAt = k.CreatedAt
	s.data.kamar[k.ID] = *k
	return nil
}

func (s *MemoryStore) SaveKamar(ctx context.Context, k *models.Kamar) error {
	defer s.lock()()
	if _, ok := s.data.kamar[k.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for id, other := range s.data.kamar {
		if id != k.ID && other.NomorKamar == k.NomorKamar {
			return fmt.Errorf("%w: kamar.nomor_kamar %s", ErrDuplicateKey, k.NomorKamar)
		}
	}
	k.UpdatedAt = s.now()
	s.data.kamar[k.ID] = *k
	return nil
}

func (s *MemoryStore) DeleteKamar(ctx context.Context, id uint) error {
	defer s.lock()()
	if _, ok := s.data.kamar[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.data.kamar, id)
	return nil
}

func (s *MemoryStore) SetStatusKamar(ctx context.Context, id uint, status string) error {
	defer s.lock()()
	k, ok := s.data.kamar[id]
	if !ok {
		return nil
	}
	k.StatusKamar = status
	k.UpdatedAt = s.now()
	s.data.kamar[id] = k
	return nil
}

func (s *MemoryStore) CompareAndSetStatusKamar(ctx context.Context, id uint, from, to string) (bool, error) {
	defer s.lock()()
	k, ok := s.data.kamar[id]
	if !ok || k.StatusKamar != from {
		return false, nil
	}
	k.StatusKamar = to
	k.UpdatedAt = s.now()
	s.data.kamar[id] = k
	return true, nil
}

func (s *MemoryStore) CountOverlap(ctx context.Context, q OverlapQuery) (int64, error) {
	defer s.lock()()
	var n int64
	for _, r := range s.data.reservasi {
		if r.IDKamar == nil || *r.IDKamar != q.IDKamar {
			continue
		}
		if q.KecualiID != 0 && r.ID == q.KecualiID {
			continue
		}
		if len(q.Status) > 0 && !models.Contains(q.Status, r.StatusReservasi) {
			continue
		}
		if r.Checkin().Before(q.Checkout) && q.Checkin.Before(r.Checkout()) {
			n++
		}
	}
	return n, nil
}

// ----------------------------------------------------
// reservasi
// ----------------------------------------------------

func (s *MemoryStore) withRelations(r models.Reservasi) models.Reservasi {
	if t, ok := s.data.tamu[r.IDTamu]; ok {
		r.Tamu = &t
	}
	if r.IDKamar != nil {
		if k, ok := s.data.kamar[*r.IDKamar]; ok {
			r.Kamar = &k
		}
	}
	return r
}

func (s *MemoryStore) FindReservasi(ctx context.Context, id uint) (*models.Reservasi, error) {
	defer s.lock()()
	r, ok := s.data.reservasi[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	r = s.withRelations(r)
	return &r, nil
}

func (s *MemoryStore) LockReservasi(ctx context.Context, id uint) (*models.Reservasi, error) {
	defer s.lock()()
	r, ok := s.data.reservasi[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &r, nil
}

func (s *MemoryStore) ListReservasi(ctx context.Context, f ReservasiFilter) ([]models.Reservasi, error) {
	defer s.lock()()
	list := make([]models.Reservasi, 0)
	for _, r := range s.data.reservasi {
		if len(f.Status) > 0 && !models.Contains(f.Status, r.StatusReservasi) {
			continue
		}
		if f.IDTamu != 0 && r.IDTamu != f.IDTamu {
			continue
		}
		if f.IDKamar != 0 && (r.IDKamar == nil || *r.IDKamar != f.IDKamar) {
			continue
		}
		if f.HanyaBerkamar && r.IDKamar == nil {
			continue
		}
		if f.Preload {
			r = s.withRelations(r)
		}
		list = append(list, r)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (s *MemoryStore) CreateReservasi(ctx context.Context, r *models.Reservasi) error {
	defer s.lock()()
	for _, other := range s.data.reservasi {
		if r.KodeReservasi != "" && other.KodeReservasi == r.KodeReservasi {
			return fmt.Errorf("%w: reservasi.kode_reservasi %s", ErrDuplicateKey, r.KodeReservasi)
		}
	}
	r.ID = s.data.next("reservasi")
	if r.TanggalReservasi.IsZero() {
		r.TanggalReservasi = s.now()
	}
	r.UpdatedAt = s.now()
	row := *r
	row.Tamu, row.Kamar = nil, nil
	s.data.reservasi[r.ID] = row
	return nil
}

func (s *MemoryStore) SaveReservasi(ctx context.Context, r *models.Reservasi) error {
	defer s.lock()()
	if _, ok := s.data.reservasi[r.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.UpdatedAt = s.now()
	row := *r
	row.Tamu, row.Kamar = nil, nil
	s.data.reservasi[r.ID] = row
	return nil
}

// ----------------------------------------------------
// tamu
// ----------------------------------------------------

func (s *MemoryStore) FindTamu(ctx context.Context, id uint) (*models.Tamu, error) {
	defer s.lock()()
	t, ok := s.data.tamu[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (s *MemoryStore) FindTamuByTelepon(ctx context.Context, noTelp string) (*models.Tamu, error) {
	defer s.lock()()
	for _, t := range s.data.tamu {
		if t.NoTelp == noTelp {
			t := t
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *MemoryStore) ListTamu(ctx context.Context, q string) ([]models.Tamu, error) {
	defer s.lock()()
	q = strings.ToLower(strings.TrimSpace(q))
	list := make([]models.Tamu, 0, len(s.data.tamu))
	for _, t := range s.data.tamu {
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Nama), q) &&
			!strings.Contains(strings.ToLower(t.Email), q) &&
			!strings.Contains(t.NoTelp, q) {
			continue
		}
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Nama < list[j].Nama })
	return list, nil
}

func (s *MemoryStore) CreateTamu(ctx context.Context, t *models.Tamu) error {
	defer s.lock()()
	for _, other := range s.data.tamu {
		if t.NoTelp != "" && other.NoTelp == t.NoTelp {
			return fmt.Errorf("%w: tamu.no_telp %s", ErrDuplicateKey, t.NoTelp)
		}
	}
	t.ID = s.data.next("tamu")
	t.CreatedAt = s.now()
	t.UpdatedAt = t.CreatedAt
	s.data.tamu[t.ID] = *t
	return nil
}

func (s *MemoryStore) SaveTamu(ctx context.Context, t *models.Tamu) error {
	defer s.lock()()
	if _, ok := s.data.tamu[t.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for id, other := range s.data.tamu {
		if id != t.ID && t.NoTelp != "" && other.NoTelp == t.NoTelp {
			return fmt.Errorf("%w: tamu.no_telp %s", ErrDuplicateKey, t.NoTelp)
		}
	}
	t.UpdatedAt = s.now()
	s.data.tamu[t.ID] = *t
	return nil
}

// ----------------------------------------------------
// pembayaran
// ----------------------------------------------------

func (s *MemoryStore) FindPembayaran(ctx context.Context, id uint) (*models.Pembayaran, error) {
	defer s.lock()()
	p, ok := s.data.pembayaran[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (s *MemoryStore) pembayaranOf(idReservasi uint) []models.Pembayaran {
	list := make([]models.Pembayaran, 0)
	for _, p := range s.data.pembayaran {
		if p.IDReservasi == idReservasi {
			list = append(list, p)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].TanggalBayar.Equal(list[j].TanggalBayar) {
			return list[i].TanggalBayar.After(list[j].TanggalBayar)
		}
		return list[i].ID > list[j].ID
	})
	return list
}

func (s *MemoryStore) LatestPembayaran(ctx context.Context, idReservasi uint) (*models.Pembayaran, error) {
	defer s.lock()()
	list := s.pembayaranOf(idReservasi)
	if len(list) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &list[0], nil
}

func (s *MemoryStore) ListPembayaran(ctx context.Context, idReservasi uint) ([]models.Pembayaran, error) {
	defer s.lock()()
	return s.pembayaranOf(idReservasi), nil
}

func (s *MemoryStore) CreatePembayaran(ctx context.Context, p *models.Pembayaran) error {
	defer s.lock()()
	p.ID = s.data.next("pembayaran")
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt
	s.data.pembayaran[p.ID] = *p
	return nil
}

func (s *MemoryStore) SavePembayaran(ctx context.Context, p *models.Pembayaran) error {
	defer s.lock()()
	if _, ok := s.data.pembayaran[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	p.UpdatedAt = s.now()
	s.data.pembayaran[p.ID] = *p
	return nil
}

func (s *MemoryStore) ResetPembayaranBelumLunas(ctx context.Context, idReservasi uint) (int64, error) {
	defer s.lock()()
	var n int64
	for id, p := range s.data.pembayaran {
		if p.IDReservasi != idReservasi || p.StatusPembayaran == models.BayarLunas {
			continue
		}
		p.StatusPembayaran = models.BayarBelumLunas
		p.UpdatedAt = s.now()
		s.data.pembayaran[id] = p
		n++
	}
	return n, nil
}

// ----------------------------------------------------
// resepsionis
// ----------------------------------------------------

func (s *MemoryStore) ListResepsionis(ctx context.Context) ([]models.Resepsionis, error) {
	defer s.lock()()
	list := make([]models.Resepsionis, 0, len(s.data.resepsionis))
	for _, r := range s.data.resepsionis {
		list = append(list, r)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Nama < list[j].Nama })
	return list, nil
}

func (s *MemoryStore) CreateResepsionis(ctx context.Context, r *models.Resepsionis) error {
	defer s.lock()()
	for _, other := range s.data.resepsionis {
		if other.Username == r.Username {
			return fmt.Errorf("%w: resepsionis.username %s", ErrDuplicateKey, r.Username)
		}
	}
	r.ID = s.data.next("resepsionis")
	r.CreatedAt = s.now()
	r.UpdatedAt = r.CreatedAt
	s.data.resepsionis[r.ID] = *r
	return nil
}

// ----------------------------------------------------
// statistik
// ----------------------------------------------------

func (s *MemoryStore) Statistik(ctx context.Context) (models.Statistik, error) {
	defer s.lock()()
	st := models.Statistik{
		KamarPerStatus:     map[string]int64{},
		ReservasiPerStatus: map[string]int64{},
	}
	for _, k := range s.data.kamar {
		st.KamarPerStatus[k.StatusKamar]++
		st.TotalKamar++
	}
	for _, r := range s.data.reservasi {
		st.ReservasiPerStatus[r.StatusReservasi]++
	}
	st.TotalTamu = int64(len(s.data.tamu))
	for _, p := range s.data.pembayaran {
		if p.StatusPembayaran == models.BayarLunas {
			st.TotalPendapatan += p.JumlahBayar
		}
	}
	return st, nil
}
