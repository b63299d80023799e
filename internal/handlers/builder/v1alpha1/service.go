package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-builder/internal/errors"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "builder.v1alpha1.CharacterBuilderService"

// CharacterBuilderServiceServer is the server API. Every request and
// response is a google.protobuf.Struct carrying the JSON form of the
// typed messages in messages.go.
type CharacterBuilderServiceServer interface {
	StartAbilitySession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetAbilitySession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SelectMethod(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ApplyDelta(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ApplyDefaultDistribution(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AdjustScore(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollAbilityGroup(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AssignRoll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetScore(context.Context, *structpb.Struct) (*structpb.Struct, error)

	ListEquipmentOptions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCharacters(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddInventoryItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetEquipped(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveInventoryItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSpells(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListFeatures(context.Context, *structpb.Struct) (*structpb.Struct, error)

	CreateCampaign(context.Context, *structpb.Struct) (*structpb.Struct, error)
	JoinCampaign(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCampaign(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCampaigns(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateHitPoints(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GiveItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SearchItems(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type serverMethod func(CharacterBuilderServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryMethod(name string, call serverMethod) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CharacterBuilderServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(CharacterBuilderServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes CharacterBuilderService for grpc.Server
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CharacterBuilderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("StartAbilitySession", CharacterBuilderServiceServer.StartAbilitySession),
		unaryMethod("GetAbilitySession", CharacterBuilderServiceServer.GetAbilitySession),
		unaryMethod("SelectMethod", CharacterBuilderServiceServer.SelectMethod),
		unaryMethod("ApplyDelta", CharacterBuilderServiceServer.ApplyDelta),
		unaryMethod("ApplyDefaultDistribution", CharacterBuilderServiceServer.ApplyDefaultDistribution),
		unaryMethod("AdjustScore", CharacterBuilderServiceServer.AdjustScore),
		unaryMethod("RollAbilityGroup", CharacterBuilderServiceServer.RollAbilityGroup),
		unaryMethod("AssignRoll", CharacterBuilderServiceServer.AssignRoll),
		unaryMethod("SetScore", CharacterBuilderServiceServer.SetScore),
		unaryMethod("ListEquipmentOptions", CharacterBuilderServiceServer.ListEquipmentOptions),
		unaryMethod("CreateCharacter", CharacterBuilderServiceServer.CreateCharacter),
		unaryMethod("GetCharacter", CharacterBuilderServiceServer.GetCharacter),
		unaryMethod("ListCharacters", CharacterBuilderServiceServer.ListCharacters),
		unaryMethod("UpdateCharacter", CharacterBuilderServiceServer.UpdateCharacter),
		unaryMethod("DeleteCharacter", CharacterBuilderServiceServer.DeleteCharacter),
		unaryMethod("AddInventoryItem", CharacterBuilderServiceServer.AddInventoryItem),
		unaryMethod("SetEquipped", CharacterBuilderServiceServer.SetEquipped),
		unaryMethod("RemoveInventoryItem", CharacterBuilderServiceServer.RemoveInventoryItem),
		unaryMethod("ListSpells", CharacterBuilderServiceServer.ListSpells),
		unaryMethod("ListFeatures", CharacterBuilderServiceServer.ListFeatures),
		unaryMethod("CreateCampaign", CharacterBuilderServiceServer.CreateCampaign),
		unaryMethod("JoinCampaign", CharacterBuilderServiceServer.JoinCampaign),
		unaryMethod("GetCampaign", CharacterBuilderServiceServer.GetCampaign),
		unaryMethod("ListCampaigns", CharacterBuilderServiceServer.ListCampaigns),
		unaryMethod("UpdateHitPoints", CharacterBuilderServiceServer.UpdateHitPoints),
		unaryMethod("GiveItem", CharacterBuilderServiceServer.GiveItem),
		unaryMethod("SearchItems", CharacterBuilderServiceServer.SearchItems),
	},
	// no .proto backs this service, so Metadata stays empty and the
	// server does not register reflection
	Streams: []grpc.StreamDesc{},
}

// RegisterCharacterBuilderServiceServer registers srv with s
func RegisterCharacterBuilderServiceServer(s grpc.ServiceRegistrar, srv CharacterBuilderServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls CharacterBuilderService with typed messages
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient wraps a connection
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Call invokes method with req encoded as a Struct and decodes the
// response into resp. Server errors come back as *errors.Error.
func (c *Client) Call(ctx context.Context, method string, req, resp any) error {
	in, err := encode(req)
	if err != nil {
		return err
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, "/"+ServiceName+"/"+method, in, out); err != nil {
		return errors.FromGRPCError(err)
	}

	return decode(out, resp)
}
