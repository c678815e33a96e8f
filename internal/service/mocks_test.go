package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/robomover/api/internal/entity"
	"github.com/robomover/api/internal/maps"
	"github.com/robomover/api/internal/repository"
	"github.com/robomover/api/internal/vapi"
)

type mockRequestsRepository struct {
	create               func(ctx context.Context, request *entity.MovingRequest) (*entity.MovingRequest, error)
	getByID              func(ctx context.Context, id uuid.UUID) (*entity.MovingRequest, error)
	list                 func(ctx context.Context, limit, offset int) ([]entity.MovingRequest, error)
	update               func(ctx context.Context, id uuid.UUID, locationFrom, locationTo, items, availability *string) (*entity.MovingRequest, error)
	delete               func(ctx context.Context, id uuid.UUID) error
	setDiscoveryOutcome  func(ctx context.Context, id uuid.UUID, quotesFound bool, companiesFound int) error
	setOriginCoordinates func(ctx context.Context, id uuid.UUID, lat, lng float64) error
}

func (m *mockRequestsRepository) Create(ctx context.Context, request *entity.MovingRequest) (*entity.MovingRequest, error) {
	if m.create != nil {
		return m.create(ctx, request)
	}
	return nil, errors.New("create not implemented")
}

func (m *mockRequestsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MovingRequest, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, errors.New("getByID not implemented")
}

func (m *mockRequestsRepository) List(ctx context.Context, limit, offset int) ([]entity.MovingRequest, error) {
	if m.list != nil {
		return m.list(ctx, limit, offset)
	}
	return nil, errors.New("list not implemented")
}

func (m *mockRequestsRepository) Update(ctx context.Context, id uuid.UUID, locationFrom, locationTo, items, availability *string) (*entity.MovingRequest, error) {
	if m.update != nil {
		return m.update(ctx, id, locationFrom, locationTo, items, availability)
	}
	return nil, errors.New("update not implemented")
}

func (m *mockRequestsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return errors.New("delete not implemented")
}

func (m *mockRequestsRepository) SetDiscoveryOutcome(ctx context.Context, id uuid.UUID, quotesFound bool, companiesFound int) error {
	if m.setDiscoveryOutcome != nil {
		return m.setDiscoveryOutcome(ctx, id, quotesFound, companiesFound)
	}
	return errors.New("setDiscoveryOutcome not implemented")
}

func (m *mockRequestsRepository) SetOriginCoordinates(ctx context.Context, id uuid.UUID, lat, lng float64) error {
	if m.setOriginCoordinates != nil {
		return m.setOriginCoordinates(ctx, id, lat, lng)
	}
	return errors.New("setOriginCoordinates not implemented")
}

type mockCompaniesRepository struct {
	resolveOrCreate func(ctx context.Context, company *entity.MovingCompany) (uuid.UUID, error)
	getByID         func(ctx context.Context, id uuid.UUID) (*entity.MovingCompany, error)
	getByPhone      func(ctx context.Context, phoneNumber string) (*entity.MovingCompany, error)
	list            func(ctx context.Context, limit, offset int) ([]entity.MovingCompany, error)
	delete          func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCompaniesRepository) ResolveOrCreate(ctx context.Context, company *entity.MovingCompany) (uuid.UUID, error) {
	if m.resolveOrCreate != nil {
		return m.resolveOrCreate(ctx, company)
	}
	return uuid.Nil, errors.New("resolveOrCreate not implemented")
}

func (m *mockCompaniesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MovingCompany, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, errors.New("getByID not implemented")
}

func (m *mockCompaniesRepository) GetByPhone(ctx context.Context, phoneNumber string) (*entity.MovingCompany, error) {
	if m.getByPhone != nil {
		return m.getByPhone(ctx, phoneNumber)
	}
	return nil, errors.New("getByPhone not implemented")
}

func (m *mockCompaniesRepository) List(ctx context.Context, limit, offset int) ([]entity.MovingCompany, error) {
	if m.list != nil {
		return m.list(ctx, limit, offset)
	}
	return nil, errors.New("list not implemented")
}

func (m *mockCompaniesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return errors.New("delete not implemented")
}

type mockInquiriesRepository struct {
	create              func(ctx context.Context, requestID, companyID uuid.UUID, phoneNumber string) (*entity.Inquiry, error)
	getByID             func(ctx context.Context, id uuid.UUID) (*entity.Inquiry, error)
	listByRequest       func(ctx context.Context, requestID uuid.UUID) ([]entity.Inquiry, error)
	findOpenForDispatch func(ctx context.Context, requestID uuid.UUID, phoneNumber string) (*entity.Inquiry, error)
	recordCallID        func(ctx context.Context, id uuid.UUID, providerCallID string) error
	recordCompletion    func(ctx context.Context, update repository.CompletionUpdate) (bool, error)
}

func (m *mockInquiriesRepository) Create(ctx context.Context, requestID, companyID uuid.UUID, phoneNumber string) (*entity.Inquiry, error) {
	if m.create != nil {
		return m.create(ctx, requestID, companyID, phoneNumber)
	}
	return nil, errors.New("create not implemented")
}

func (m *mockInquiriesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Inquiry, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, errors.New("getByID not implemented")
}

func (m *mockInquiriesRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]entity.Inquiry, error) {
	if m.listByRequest != nil {
		return m.listByRequest(ctx, requestID)
	}
	return nil, errors.New("listByRequest not implemented")
}

func (m *mockInquiriesRepository) FindOpenForDispatch(ctx context.Context, requestID uuid.UUID, phoneNumber string) (*entity.Inquiry, error) {
	if m.findOpenForDispatch != nil {
		return m.findOpenForDispatch(ctx, requestID, phoneNumber)
	}
	return nil, errors.New("findOpenForDispatch not implemented")
}

func (m *mockInquiriesRepository) RecordCallID(ctx context.Context, id uuid.UUID, providerCallID string) error {
	if m.recordCallID != nil {
		return m.recordCallID(ctx, id, providerCallID)
	}
	return errors.New("recordCallID not implemented")
}

func (m *mockInquiriesRepository) RecordCompletion(ctx context.Context, update repository.CompletionUpdate) (bool, error) {
	if m.recordCompletion != nil {
		return m.recordCompletion(ctx, update)
	}
	return false, errors.New("recordCompletion not implemented")
}

type mockPlacesAPI struct {
	geocode      func(ctx context.Context, address string) (maps.LatLng, error)
	textSearch   func(ctx context.Context, query string, location maps.LatLng, radiusMeters int) ([]maps.Place, error)
	placeDetails func(ctx context.Context, placeID string) (maps.PlaceDetails, error)
}

func (m *mockPlacesAPI) Geocode(ctx context.Context, address string) (maps.LatLng, error) {
	if m.geocode != nil {
		return m.geocode(ctx, address)
	}
	return maps.LatLng{}, errors.New("geocode not implemented")
}

func (m *mockPlacesAPI) TextSearch(ctx context.Context, query string, location maps.LatLng, radiusMeters int) ([]maps.Place, error) {
	if m.textSearch != nil {
		return m.textSearch(ctx, query, location, radiusMeters)
	}
	return nil, errors.New("textSearch not implemented")
}

func (m *mockPlacesAPI) PlaceDetails(ctx context.Context, placeID string) (maps.PlaceDetails, error) {
	if m.placeDetails != nil {
		return m.placeDetails(ctx, placeID)
	}
	return maps.PlaceDetails{}, errors.New("placeDetails not implemented")
}

type mockCallCreator struct {
	createCall func(ctx context.Context, call vapi.CallRequest) (string, error)
}

func (m *mockCallCreator) CreateCall(ctx context.Context, call vapi.CallRequest) (string, error) {
	if m.createCall != nil {
		return m.createCall(ctx, call)
	}
	return "", errors.New("createCall not implemented")
}

type mockScheduler struct {
	enqueueDiscovery func(ctx context.Context, requestID uuid.UUID) error
}

func (m *mockScheduler) EnqueueDiscovery(ctx context.Context, requestID uuid.UUID) error {
	if m.enqueueDiscovery != nil {
		return m.enqueueDiscovery(ctx, requestID)
	}
	return errors.New("enqueueDiscovery not implemented")
}

type mockExtractor struct {
	extractPrice func(ctx context.Context, transcript, requestID string) (float64, error)
}

func (m *mockExtractor) ExtractPrice(ctx context.Context, transcript, requestID string) (float64, error) {
	if m.extractPrice != nil {
		return m.extractPrice(ctx, transcript, requestID)
	}
	return 0, errors.New("extractPrice not implemented")
}
